package reporter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGAdapter implements Adapter over a pgx connection pool. Query parameters
// are bound as named arguments (@name placeholders in the SQL).
type PGAdapter struct {
	pool *pgxpool.Pool
}

// NewPGAdapter wraps a pgx pool as a report query adapter.
func NewPGAdapter(pool *pgxpool.Pool) *PGAdapter {
	return &PGAdapter{pool: pool}
}

// Execute runs the query and returns column names plus a streaming row set.
// The caller must close the returned Rows.
func (a *PGAdapter) Execute(ctx context.Context, query string, params map[string]any) ([]string, Rows, error) {
	args := make([]any, 0, 1)
	if len(params) > 0 {
		args = append(args, pgx.NamedArgs(params))
	}

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("executing query: %w", err)
	}

	fields := rows.FieldDescriptions()
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = string(field.Name)
	}

	return headers, pgxRows{rows: rows}, nil
}

// pgxRows adapts pgx.Rows to the reporter Rows interface.
type pgxRows struct {
	rows pgx.Rows
}

func (r pgxRows) Next() bool             { return r.rows.Next() }
func (r pgxRows) Values() ([]any, error) { return r.rows.Values() }
func (r pgxRows) Err() error             { return r.rows.Err() }
func (r pgxRows) Close()                 { r.rows.Close() }
