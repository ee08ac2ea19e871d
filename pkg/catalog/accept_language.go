package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps header parsing to avoid pathological inputs.
const maxAcceptLanguageLength = 4096

// acceptedLang is one parsed Accept-Language entry with its quality value.
type acceptedLang struct {
	tag     string
	quality float64
}

// ParseAcceptLanguage picks the best catalog language for an Accept-Language
// header. Entries are matched against available codes case-insensitively,
// first exactly, then by base language ("de-AT" matches "DE"). Quality values
// are honored. When nothing matches, the first available code is returned.
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}

	for _, accepted := range parseAcceptedLangs(header) {
		for _, code := range available {
			if strings.EqualFold(accepted.tag, code) {
				return code
			}
		}
		base, _, _ := strings.Cut(accepted.tag, "-")
		for _, code := range available {
			availBase, _, _ := strings.Cut(code, "-")
			if strings.EqualFold(base, availBase) {
				return code
			}
		}
	}

	return available[0]
}

// parseAcceptedLangs splits an Accept-Language header into tags sorted by
// descending quality.
func parseAcceptedLangs(header string) []acceptedLang {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []acceptedLang
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		tag, qPart, hasQuality := strings.Cut(part, ";")
		tag = strings.TrimSpace(tag)
		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if rest, ok := strings.CutPrefix(qPart, "q="); ok {
				if q, err := strconv.ParseFloat(rest, 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if tag == "" || tag == "*" {
			continue
		}
		tags = append(tags, acceptedLang{tag: tag, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b acceptedLang) int {
		return cmp.Compare(b.quality, a.quality)
	})
	return tags
}
