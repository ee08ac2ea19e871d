package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// entry is one (domain, label, lang, text) triple extracted from a catalog file.
type entry struct {
	domain string
	label  string
	lang   string
	text   string
}

// LoadFile reads a catalog file and merges its entries into RootDomain.
// Two shapes are supported:
//
//   - object-of-objects: {"LABEL": {"EN": "text", "DE": "text"}}
//   - list-of-records:   [{"label": "LABEL", "lang": "EN", "text": "text"}]
//
// Files ending in .yaml or .yml are parsed as YAML with the same shapes; every
// other file is parsed as UTF-8 JSON. Malformed input or an unrecognized
// top-level shape fails with ErrParse; a record missing one of its string
// fields fails with ErrValidation naming the record index.
//
// The whole batch is validated before any mutation, so a failed load leaves
// the catalog exactly as it was. It returns the number of stored entries;
// with overwrite false, entries skipped due to an existing text are not
// counted.
func (c *Catalog) LoadFile(path string, overwrite bool) (int, error) {
	doc, err := readCatalogFile(path)
	if err != nil {
		return 0, err
	}

	var entries []entry
	switch data := doc.(type) {
	case map[string]any:
		entries, err = flattenLabelMap(RootDomain, data)
	case []any:
		entries, err = flattenRecords(data)
	default:
		return 0, fmt.Errorf("%w: %s: top-level value must be an object or an array", ErrParse, path)
	}
	if err != nil {
		return 0, err
	}

	return c.applyEntries(entries, overwrite)
}

// AddFile merges an additional catalog file into RootDomain without
// overwriting existing entries.
func (c *Catalog) AddFile(path string) (int, error) {
	return c.LoadFile(path, false)
}

// LoadDomainFile reads a domain-aware catalog file shaped as
// {"DOMAIN": {"LABEL": {"EN": "text"}}} and merges every domain's entries.
func (c *Catalog) LoadDomainFile(path string, overwrite bool) (int, error) {
	doc, err := readCatalogFile(path)
	if err != nil {
		return 0, err
	}

	data, ok := doc.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("%w: %s: domain-aware catalog must be a top-level object", ErrParse, path)
	}

	var entries []entry
	for dom, value := range data {
		labels, ok := value.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("%w: domain %q must map to an object of labels", ErrValidation, dom)
		}
		flat, err := flattenLabelMap(NormalizeDomain(dom), labels)
		if err != nil {
			return 0, err
		}
		entries = append(entries, flat...)
	}

	return c.applyEntries(entries, overwrite)
}

// LoadLanguageFile reads a single-language catalog file and stores every text
// under the given language code in RootDomain. Supported shapes:
//
//   - object: {"LABEL": "text"}
//   - list:   [{"label": "LABEL", "text": "text"}]
func (c *Catalog) LoadLanguageFile(lang, path string, overwrite bool) (int, error) {
	code := normalizeLang(lang)
	if code == "" {
		return 0, ErrEmptyLanguage
	}

	doc, err := readCatalogFile(path)
	if err != nil {
		return 0, err
	}

	var entries []entry
	switch data := doc.(type) {
	case map[string]any:
		for label, value := range data {
			text, ok := value.(string)
			if !ok {
				return 0, fmt.Errorf("%w: label %q must map to a string text", ErrValidation, label)
			}
			entries = append(entries, entry{domain: RootDomain, label: label, lang: code, text: text})
		}
	case []any:
		for i, item := range data {
			rec, ok := item.(map[string]any)
			if !ok {
				return 0, fmt.Errorf("%w: record %d must be an object", ErrValidation, i)
			}
			label, okLabel := rec["label"].(string)
			text, okText := rec["text"].(string)
			if !okLabel || !okText {
				return 0, fmt.Errorf("%w: record %d must have string fields label and text", ErrValidation, i)
			}
			entries = append(entries, entry{domain: RootDomain, label: label, lang: code, text: text})
		}
	default:
		return 0, fmt.Errorf("%w: %s: top-level value must be an object or an array", ErrParse, path)
	}

	return c.applyEntries(entries, overwrite)
}

// ReloadFile clears the entire catalog and repopulates it from one file. The
// clear happens first: when the subsequent load fails, the catalog is left
// empty rather than holding stale pre-reload data.
func (c *Catalog) ReloadFile(path string) (int, error) {
	c.data = make(map[string]map[string]map[string]string)
	return c.LoadFile(path, true)
}

// applyEntries validates the full batch before storing anything, making loads
// atomic: an invalid language code anywhere in the file mutates nothing.
func (c *Catalog) applyEntries(entries []entry, overwrite bool) (int, error) {
	for _, e := range entries {
		if e.label == "" {
			return 0, fmt.Errorf("%w: empty label", ErrValidation)
		}
		code := normalizeLang(e.lang)
		if code == "" {
			return 0, fmt.Errorf("%w: empty language for label %q", ErrValidation, e.label)
		}
		if err := c.checkAllowed(code); err != nil {
			return 0, err
		}
	}

	count := 0
	for _, e := range entries {
		stored, err := c.SetTextIn(e.domain, e.label, e.lang, e.text, overwrite)
		if err != nil {
			return count, err
		}
		if stored {
			count++
		}
	}
	return count, nil
}

// flattenLabelMap turns shape A ({"LABEL": {"EN": "text"}}) into entries for
// one domain.
func flattenLabelMap(domain string, data map[string]any) ([]entry, error) {
	var entries []entry
	for label, value := range data {
		texts, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: label %q must map to an object of languages", ErrValidation, label)
		}
		for lang, raw := range texts {
			text, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: label %q language %q must map to a string text", ErrValidation, label, lang)
			}
			entries = append(entries, entry{domain: domain, label: label, lang: lang, text: text})
		}
	}
	return entries, nil
}

// flattenRecords turns shape B ([{"label": ..., "lang": ..., "text": ...}])
// into entries, preserving document order.
func flattenRecords(data []any) ([]entry, error) {
	entries := make([]entry, 0, len(data))
	for i, item := range data {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d must be an object", ErrValidation, i)
		}
		label, okLabel := rec["label"].(string)
		lang, okLang := rec["lang"].(string)
		text, okText := rec["text"].(string)
		if !okLabel || !okLang || !okText {
			return nil, fmt.Errorf("%w: record %d must have string fields label, lang and text", ErrValidation, i)
		}
		entries = append(entries, entry{domain: RootDomain, label: label, lang: lang, text: text})
	}
	return entries, nil
}

// readCatalogFile loads and unmarshals a catalog file, selecting the codec by
// file extension.
func readCatalogFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Join(fmt.Errorf("%w: %s", ErrParse, path), err)
		}
		doc = normalizeYAML(doc)
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Join(fmt.Errorf("%w: %s", ErrParse, path), err)
		}
	}
	return doc, nil
}

// normalizeYAML rewrites yaml.v3's map[any]any values (possible with non-string
// scalar keys) into the map[string]any shape the flatteners expect.
func normalizeYAML(doc any) any {
	switch v := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = normalizeYAML(value)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprintf("%v", key)] = normalizeYAML(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return doc
	}
}
