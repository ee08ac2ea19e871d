package catalog

import (
	"fmt"
	"strings"
)

// Fmt resolves the text for (label, lang) and substitutes every {name}
// placeholder with the matching value from args. The lookup uses the plain
// fallback chain only; callers needing an explicit fallback language or a
// literal default must resolve via GetText first and format the result with
// ReplacePlaceholders.
//
// A placeholder whose name is absent from args fails with ErrFormat naming the
// key, label and language. Keys in args without a matching placeholder are
// ignored.
func (c *Catalog) Fmt(label, lang string, args M) (string, error) {
	text, err := c.GetText(label, lang)
	if err != nil {
		return "", err
	}

	out, err := ReplacePlaceholders(text, args)
	if err != nil {
		code := normalizeLang(lang)
		if code == "" {
			code = c.defaultLang
		}
		return "", fmt.Errorf("%w (label %q, lang %s)", err, label, code)
	}
	return out, nil
}

// ReplacePlaceholders substitutes {name} placeholders in template with values
// from args, rendering each value with %v. Substitution is a single
// left-to-right pass: substituted values are never re-scanned for
// placeholders. Placeholder names consist of letters, digits and underscores
// and must not start with a digit; any other {...} token is left verbatim.
// A well-formed placeholder missing from args fails with ErrFormat.
func ReplacePlaceholders(template string, args M) (string, error) {
	if !strings.ContainsRune(template, '{') {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		ch := template[i]
		if ch != '{' {
			b.WriteByte(ch)
			i++
			continue
		}

		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			// Unterminated brace, keep the rest as-is.
			b.WriteString(template[i:])
			break
		}

		token := template[i+1 : i+1+end]
		if !isPlaceholderName(token) {
			b.WriteString(template[i : i+end+2])
			i += end + 2
			continue
		}

		value, ok := args[token]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrFormat, token)
		}
		fmt.Fprintf(&b, "%v", value)
		i += end + 2
	}

	return b.String(), nil
}

// isPlaceholderName reports whether s is a valid placeholder identifier.
func isPlaceholderName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
