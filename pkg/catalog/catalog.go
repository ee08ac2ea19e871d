package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "EN"

// M is a map of placeholder names to values for text formatting.
type M map[string]any

// Catalog maps a case-sensitive label and an uppercase language code to a text
// value, grouped by hierarchical domains. Lookups walk the domain chain from
// the most specific domain up to RootDomain, trying the full language fallback
// order at every step.
//
// A Catalog carries no internal locking. Callers sharing one instance across
// goroutines that mutate it must synchronize externally, or use one instance
// per concurrent context.
type Catalog struct {
	// domain -> label -> language code -> text
	data map[string]map[string]map[string]string

	// Allowed language codes; nil means unrestricted.
	allowed map[string]struct{}

	// Fallback language used when a lookup names no language.
	defaultLang string

	// Ambient domain used when an operation names no domain.
	context string
}

// Option configures the Catalog during construction.
type Option func(*Catalog) error

// New creates a new Catalog with the given options.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		data:        make(map[string]map[string]map[string]string),
		defaultLang: DefaultLang,
		context:     RootDomain,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// The default language must always be usable as a write target.
	if err := c.checkAllowed(c.defaultLang); err != nil {
		return nil, err
	}

	return c, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) error {
		code := normalizeLang(lang)
		if code == "" {
			return ErrEmptyLanguage
		}
		c.defaultLang = code
		return nil
	}
}

// WithAllowedLanguages restricts the language codes that may ever be written
// to the catalog. Empty entries are ignored; passing nothing leaves the
// catalog unrestricted.
func WithAllowedLanguages(langs ...string) Option {
	return func(c *Catalog) error {
		set := make(map[string]struct{}, len(langs))
		for _, lang := range langs {
			if code := normalizeLang(lang); code != "" {
				set[code] = struct{}{}
			}
		}
		if len(set) > 0 {
			c.allowed = set
		}
		return nil
	}
}

// WithContext sets the initial ambient domain.
func WithContext(domain string) Option {
	return func(c *Catalog) error {
		c.context = NormalizeDomain(domain)
		return nil
	}
}

// DefaultLang returns the current default language code.
func (c *Catalog) DefaultLang() string {
	return c.defaultLang
}

// SetDefaultLang replaces the default language. The new code is validated
// against the allowed set when one is configured.
func (c *Catalog) SetDefaultLang(lang string) error {
	code := normalizeLang(lang)
	if code == "" {
		return ErrEmptyLanguage
	}
	if err := c.checkAllowed(code); err != nil {
		return err
	}
	c.defaultLang = code
	return nil
}

// Context returns the current ambient domain.
func (c *Catalog) Context() string {
	return c.context
}

// SetContext switches the ambient domain. An empty domain selects RootDomain.
func (c *Catalog) SetContext(domain string) {
	c.context = NormalizeDomain(domain)
}

// SetText stores a text for (label, lang) in the ambient domain. The language
// code is uppercased before storage. When an entry already exists and
// overwrite is false the call is a no-op and reports false; otherwise the text
// is stored and the call reports true.
func (c *Catalog) SetText(label, lang, text string, overwrite bool) (bool, error) {
	return c.SetTextIn(c.context, label, lang, text, overwrite)
}

// SetTextIn is SetText targeting an explicit domain. An empty domain selects
// RootDomain.
func (c *Catalog) SetTextIn(domain, label, lang, text string, overwrite bool) (bool, error) {
	if label == "" {
		return false, ErrEmptyLabel
	}
	code := normalizeLang(lang)
	if code == "" {
		return false, ErrEmptyLanguage
	}
	if err := c.checkAllowed(code); err != nil {
		return false, err
	}

	dom := NormalizeDomain(domain)
	labels, ok := c.data[dom]
	if !ok {
		labels = make(map[string]map[string]string)
		c.data[dom] = labels
	}
	texts, ok := labels[label]
	if !ok {
		texts = make(map[string]string)
		labels[label] = texts
	}

	if _, exists := texts[code]; exists && !overwrite {
		return false, nil
	}
	texts[code] = text
	return true, nil
}

// resolveOptions collects the optional parameters of a lookup.
type resolveOptions struct {
	fallback   string
	def        string
	domain     string
	hasDefault bool
	hasDomain  bool
}

// ResolveOption configures a single GetText lookup.
type ResolveOption func(*resolveOptions)

// WithFallback adds an explicit fallback language tried after the requested one.
func WithFallback(lang string) ResolveOption {
	return func(o *resolveOptions) {
		o.fallback = lang
	}
}

// WithDefault supplies a literal value returned verbatim when the whole
// fallback chain is exhausted. The value is never looked up.
func WithDefault(text string) ResolveOption {
	return func(o *resolveOptions) {
		o.def = text
		o.hasDefault = true
	}
}

// InDomain starts the lookup in an explicit domain instead of the ambient one.
func InDomain(domain string) ResolveOption {
	return func(o *resolveOptions) {
		o.domain = domain
		o.hasDomain = true
	}
}

// GetText resolves a text for label. An empty lang selects the catalog default
// language. Per domain step the resolution order is: requested language,
// explicit fallback, catalog default language. Domains are searched from the
// most specific one up to RootDomain. When nothing matches, a default supplied
// via WithDefault is returned verbatim; otherwise the lookup fails with
// ErrMissingText naming the label and the attempted chain.
func (c *Catalog) GetText(label, lang string, opts ...ResolveOption) (string, error) {
	var ro resolveOptions
	for _, opt := range opts {
		opt(&ro)
	}

	langs := c.languageOrder(lang, ro.fallback)
	dom := c.context
	if ro.hasDomain {
		dom = ro.domain
	}
	chain := domainChain(dom)

	if label != "" {
		for _, d := range chain {
			texts := c.data[d][label]
			if texts == nil {
				continue
			}
			for _, code := range langs {
				if text, ok := texts[code]; ok {
					return text, nil
				}
			}
		}
	}

	if ro.hasDefault {
		return ro.def, nil
	}
	return "", fmt.Errorf("%w: label %q (languages tried: %s; domains tried: %s)",
		ErrMissingText, label, strings.Join(langs, ", "), strings.Join(chain, ", "))
}

// HasText reports whether any text exists for label along the ambient domain
// chain. An empty lang matches any language.
func (c *Catalog) HasText(label, lang string) bool {
	if label == "" {
		return false
	}
	code := normalizeLang(lang)
	for _, d := range domainChain(c.context) {
		texts := c.data[d][label]
		if texts == nil {
			continue
		}
		if code == "" {
			if len(texts) > 0 {
				return true
			}
			continue
		}
		if _, ok := texts[code]; ok {
			return true
		}
	}
	return false
}

// ListLabels returns every label across all domains, sorted ascending without
// duplicates.
func (c *Catalog) ListLabels() []string {
	set := make(map[string]struct{})
	for _, labels := range c.data {
		for label := range labels {
			set[label] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ListLabelsIn returns the labels of one domain. With recursive true the
// union across the domain and all of its subdomains is returned.
func (c *Catalog) ListLabelsIn(domain string, recursive bool) []string {
	dom := NormalizeDomain(domain)
	set := make(map[string]struct{})
	for label := range c.data[dom] {
		set[label] = struct{}{}
	}
	if recursive {
		prefix := dom + "."
		for d, labels := range c.data {
			if !strings.HasPrefix(d, prefix) {
				continue
			}
			for label := range labels {
				set[label] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// Languages returns the sorted union of every language code used across all
// labels and domains.
func (c *Catalog) Languages() []string {
	set := make(map[string]struct{})
	for _, labels := range c.data {
		for _, texts := range labels {
			for code := range texts {
				set[code] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// LabelLanguages returns the sorted language codes stored for one label across
// all domains. It fails with ErrUnknownLabel when the label has no entries.
func (c *Catalog) LabelLanguages(label string) ([]string, error) {
	set := make(map[string]struct{})
	for _, labels := range c.data {
		for code := range labels[label] {
			set[code] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return sortedKeys(set), nil
}

// ToMap exports the RootDomain entries as label -> language -> text. The
// result is a deep copy; mutating it never affects the catalog.
func (c *Catalog) ToMap() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.data[RootDomain]))
	for label, texts := range c.data[RootDomain] {
		copied := make(map[string]string, len(texts))
		for code, text := range texts {
			copied[code] = text
		}
		out[label] = copied
	}
	return out
}

// DomainMap exports the full structure as domain -> label -> language -> text.
// The result is a deep copy.
func (c *Catalog) DomainMap() map[string]map[string]map[string]string {
	out := make(map[string]map[string]map[string]string, len(c.data))
	for dom, labels := range c.data {
		copiedLabels := make(map[string]map[string]string, len(labels))
		for label, texts := range labels {
			copied := make(map[string]string, len(texts))
			for code, text := range texts {
				copied[code] = text
			}
			copiedLabels[label] = copied
		}
		out[dom] = copiedLabels
	}
	return out
}

// languageOrder builds the language fallback order for a lookup: requested
// language (or the catalog default when empty), explicit fallback, catalog
// default. Duplicates are collapsed while preserving order.
func (c *Catalog) languageOrder(lang, fallback string) []string {
	primary := normalizeLang(lang)
	if primary == "" {
		primary = c.defaultLang
	}

	order := make([]string, 0, 3)
	order = append(order, primary)
	if code := normalizeLang(fallback); code != "" && code != primary {
		order = append(order, code)
	}
	found := false
	for _, code := range order {
		if code == c.defaultLang {
			found = true
			break
		}
	}
	if !found {
		order = append(order, c.defaultLang)
	}
	return order
}

// checkAllowed validates a normalized language code against the allowed set.
func (c *Catalog) checkAllowed(code string) error {
	if c.allowed == nil {
		return nil
	}
	if _, ok := c.allowed[code]; !ok {
		return fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidLanguage, code, strings.Join(sortedKeys(c.allowed), ", "))
	}
	return nil
}

// normalizeLang uppercases and trims a language code.
func normalizeLang(lang string) string {
	return strings.ToUpper(strings.TrimSpace(lang))
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
