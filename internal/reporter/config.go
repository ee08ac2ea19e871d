package reporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var (
	ErrEmptyQuery       = errors.New("reporter: query cannot be empty")
	ErrUnknownQuery     = errors.New("reporter: unknown query label")
	ErrUnknownCSVConfig = errors.New("reporter: unknown csv config label")
	ErrInvalidFile      = errors.New("reporter: invalid config file")
)

// CSVSpec controls how one report variant is written.
type CSVSpec struct {
	Delimiter    string `json:"delimiter"`
	UseCRLF      bool   `json:"crlf"`
	Header       bool   `json:"header"`
	DecimalComma bool   `json:"decimal_comma"`
	DateFormat   string `json:"date_format"`
	NullValue    string `json:"null_value"`
}

// DefaultCSVSpec is used when a report names no CSV config.
func DefaultCSVSpec() CSVSpec {
	return CSVSpec{
		Delimiter:  ";",
		Header:     true,
		DateFormat: "2006-01-02 15:04:05",
	}
}

// normalize fills zero values with defaults.
func (s CSVSpec) normalize() CSVSpec {
	def := DefaultCSVSpec()
	if s.Delimiter == "" {
		s.Delimiter = def.Delimiter
	}
	if s.DateFormat == "" {
		s.DateFormat = def.DateFormat
	}
	return s
}

// Config holds labeled SQL queries and labeled CSV format specs. All
// user-visible strings stay out of the config; callers resolve messages
// through the text catalog.
type Config struct {
	queries map[string]string
	specs   map[string]CSVSpec
}

// NewConfig creates an empty reporter config.
func NewConfig() *Config {
	return &Config{
		queries: make(map[string]string),
		specs:   make(map[string]CSVSpec),
	}
}

// FromFiles loads queries ({"LABEL": "SELECT ..."}) and CSV specs
// ({"LABEL": {"delimiter": ";"}}) from two JSON files.
func FromFiles(queriesPath, specsPath string) (*Config, error) {
	cfg := NewConfig()

	var queries map[string]string
	if err := readJSONFile(queriesPath, &queries); err != nil {
		return nil, err
	}
	for label, query := range queries {
		if _, err := cfg.SetQuery(label, query, true); err != nil {
			return nil, fmt.Errorf("query %q: %w", label, err)
		}
	}

	var specs map[string]CSVSpec
	if err := readJSONFile(specsPath, &specs); err != nil {
		return nil, err
	}
	for label, spec := range specs {
		cfg.SetCSVSpec(label, spec, true)
	}

	return cfg, nil
}

// SetQuery stores a SQL statement under a label. With overwrite false an
// existing query is kept and the call reports false.
func (c *Config) SetQuery(label, query string, overwrite bool) (bool, error) {
	if query == "" {
		return false, ErrEmptyQuery
	}
	if _, exists := c.queries[label]; exists && !overwrite {
		return false, nil
	}
	c.queries[label] = query
	return true, nil
}

// Query returns the SQL statement for a label.
func (c *Config) Query(label string) (string, error) {
	query, ok := c.queries[label]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuery, label)
	}
	return query, nil
}

// QueryLabels returns all query labels sorted ascending.
func (c *Config) QueryLabels() []string {
	return sortedLabels(c.queries)
}

// SetCSVSpec stores a CSV format spec under a label, filling defaults. With
// overwrite false an existing spec is kept and the call reports false.
func (c *Config) SetCSVSpec(label string, spec CSVSpec, overwrite bool) bool {
	if _, exists := c.specs[label]; exists && !overwrite {
		return false
	}
	c.specs[label] = spec.normalize()
	return true
}

// CSVSpec returns the format spec for a label. An empty label selects the
// default spec.
func (c *Config) CSVSpec(label string) (CSVSpec, error) {
	if label == "" {
		return DefaultCSVSpec(), nil
	}
	spec, ok := c.specs[label]
	if !ok {
		return CSVSpec{}, fmt.Errorf("%w: %q", ErrUnknownCSVConfig, label)
	}
	return spec, nil
}

// CSVSpecLabels returns all spec labels sorted ascending.
func (c *Config) CSVSpecLabels() []string {
	return sortedLabels(c.specs)
}

func sortedLabels[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for label := range m {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func readJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Join(fmt.Errorf("%w: %s", ErrInvalidFile, path), err)
	}
	return nil
}
