package rsmatch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jward/rsmatch/internal/store"
)

// DefaultTimeout bounds a single batch round-trip.
const DefaultTimeout = 30 * time.Second

// Querier is the read side of *sql.DB used to run batch lookups.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Executor runs one combined lookup per batch against the reference table.
type Executor struct {
	q       Querier
	table   string
	timeout time.Duration
}

// NewExecutor returns an Executor reading from table through q. A timeout
// of zero or less disables the per-batch deadline.
func NewExecutor(q Querier, table string, timeout time.Duration) (*Executor, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}
	return &Executor{q: q, table: table, timeout: timeout}, nil
}

// Execute looks up every variant of b with a single query. Any failure is
// returned as a *BatchExecutionError carrying index.
func (x *Executor) Execute(ctx context.Context, index int, b Batch) ([]RawRow, error) {
	rows, err := x.execute(ctx, b)
	if err != nil {
		return nil, &BatchExecutionError{Batch: index, Err: err}
	}
	return rows, nil
}

func (x *Executor) execute(ctx context.Context, b Batch) ([]RawRow, error) {
	q, err := BuildQuery(x.table, b)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	rows, err := x.q.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vals, err := store.ScanAll(rows)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	out := make([]RawRow, len(vals))
	for i, v := range vals {
		out[i] = RawRow(v)
	}
	return out, nil
}
