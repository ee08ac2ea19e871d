// Package reporter generates CSV reports from labeled SQL queries, resolving
// every user-visible message through the text catalog.
package reporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/textcat/pkg/catalog"
)

// Rows is a forward-only row stream returned by an Adapter.
type Rows interface {
	Next() bool
	Values() ([]any, error)
	Err() error
	Close()
}

// Adapter executes a SQL statement and returns column headers plus a row
// stream. Implementations own statement parameter binding.
type Adapter interface {
	Execute(ctx context.Context, query string, params map[string]any) ([]string, Rows, error)
}

// Result describes one finished report.
type Result struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// Reporter executes labeled queries and writes their results as CSV files.
type Reporter struct {
	db  Adapter
	cfg *Config
	cat *catalog.Catalog
	log *slog.Logger
}

// New creates a Reporter over a DB adapter, a reporter config and the text
// catalog used for messages.
func New(db Adapter, cfg *Config, cat *catalog.Catalog, log *slog.Logger) *Reporter {
	return &Reporter{db: db, cfg: cfg, cat: cat, log: log}
}

// Run executes the labeled query with the given named parameters and writes
// the result to outPath using the labeled CSV spec (empty specLabel selects
// the default spec). It returns the written path and row count.
func (r *Reporter) Run(ctx context.Context, queryLabel, outPath string, params map[string]any, specLabel string) (Result, error) {
	query, err := r.cfg.Query(queryLabel)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w",
			r.message("ERR_UNKNOWN_QUERY_LABEL", catalog.M{"q_label": queryLabel}, "unknown query label"), err)
	}
	spec, err := r.cfg.CSVSpec(specLabel)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w",
			r.message("ERR_UNKNOWN_CSV_CONFIG", catalog.M{"c_label": specLabel}, "unknown csv config"), err)
	}

	headers, rows, err := r.db.Execute(ctx, query, params)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w",
			r.message("ERR_QUERY_FAILED", catalog.M{"q_label": queryLabel}, "query failed"), err)
	}
	defer rows.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("creating report directory: %w", err)
	}
	file, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating report file: %w", err)
	}

	count, err := r.write(file, spec, headers, rows)
	if cerr := file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		// Do not leave a half-written report behind.
		_ = os.Remove(outPath)
		return Result{}, err
	}

	r.log.Info(r.message("REPORT_DONE", catalog.M{"q_label": queryLabel, "rows": count}, "report finished"),
		slog.String("query", queryLabel),
		slog.String("path", outPath),
		slog.Int("rows", count),
	)
	return Result{Path: outPath, Rows: count}, nil
}

func (r *Reporter) write(file *os.File, spec CSVSpec, headers []string, rows Rows) (int, error) {
	w := csv.NewWriter(file)
	w.Comma = []rune(spec.Delimiter)[0]
	w.UseCRLF = spec.UseCRLF

	if spec.Header {
		if err := w.Write(headers); err != nil {
			return 0, fmt.Errorf("writing header: %w", err)
		}
	}

	count := 0
	record := make([]string, len(headers))
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return count, fmt.Errorf("reading row %d: %w", count, err)
		}
		if len(values) != len(headers) {
			return count, fmt.Errorf("row %d: got %d values for %d columns", count, len(values), len(headers))
		}
		for i, value := range values {
			record[i] = formatValue(value, spec)
		}
		if err := w.Write(record); err != nil {
			return count, fmt.Errorf("writing row %d: %w", count, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("reading rows: %w", err)
	}

	w.Flush()
	return count, w.Error()
}

// formatValue renders one cell according to the CSV spec.
func formatValue(value any, spec CSVSpec) string {
	switch v := value.(type) {
	case nil:
		return spec.NullValue
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(spec.DateFormat)
	case float64:
		return formatFloat(v, spec)
	case float32:
		return formatFloat(float64(v), spec)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64, spec CSVSpec) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if spec.DecimalComma {
		out = strings.Replace(out, ".", ",", 1)
	}
	return out
}

// message resolves a catalog text with a literal fallback and formats it. On
// a formatting problem the raw template is returned rather than masking the
// report itself.
func (r *Reporter) message(label string, args catalog.M, fallback string) string {
	tpl, err := r.cat.GetText(label, "", catalog.WithDefault(fallback))
	if err != nil {
		return fallback
	}
	out, err := catalog.ReplacePlaceholders(tpl, args)
	if err != nil {
		return tpl
	}
	return out
}
