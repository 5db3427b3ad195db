package rsmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jward/rsmatch/internal/store"
	"github.com/rs/zerolog"
)

// DefaultTable is the reference table name used when none is configured.
const DefaultTable = "snp"

// DefaultDriver is the database/sql driver used when none is configured.
const DefaultDriver = store.DriverCgo

// Engine resolves variants to rsIDs against a read-only reference store.
// An Engine is safe for concurrent Lookup calls.
type Engine struct {
	store   *store.Store
	exec    *Executor
	table   string
	driver  string
	size    int
	workers int
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBatchSize sets the number of variants looked up per query.
func WithBatchSize(n int) Option {
	return func(e *Engine) { e.size = n }
}

// WithTable sets the reference table name.
func WithTable(name string) Option {
	return func(e *Engine) { e.table = name }
}

// WithDriver selects the SQLite driver: "sqlite3" (mattn/go-sqlite3, the
// default) or "sqlite" (modernc.org/sqlite, no cgo).
func WithDriver(name string) Option {
	return func(e *Engine) { e.driver = name }
}

// WithTimeout bounds each batch's store round-trip. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithWorkers sets how many batches run at once. 1 (the default) processes
// batches sequentially. Output order is batch order either way.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets the logger used for per-batch progress and diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New opens the reference store at dbPath read-only and checks that the
// configured table exists with the columns a lookup reads. All setup
// problems are returned as *ConfigError.
func New(dbPath string, opts ...Option) (*Engine, error) {
	e := &Engine{
		table:   DefaultTable,
		driver:  DefaultDriver,
		size:    DefaultBatchSize,
		workers: 1,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := validateBatchSize(e.size); err != nil {
		return nil, err
	}
	if e.workers < 1 {
		return nil, &ConfigError{Field: "workers", Reason: fmt.Sprintf("must be at least 1, got %d", e.workers)}
	}
	if e.timeout < 0 {
		return nil, &ConfigError{Field: "timeout", Reason: fmt.Sprintf("must not be negative, got %s", e.timeout)}
	}
	if err := ValidateTableName(e.table); err != nil {
		return nil, err
	}

	s, err := store.Open(e.driver, dbPath)
	if err != nil {
		field := "db"
		if errors.Is(err, store.ErrUnknownDriver) {
			field = "driver"
		}
		return nil, &ConfigError{Field: field, Reason: "cannot open reference store " + dbPath, Err: err}
	}

	missing, err := s.MissingColumns(context.Background(), e.table, ReferenceColumns)
	if err != nil {
		s.Close()
		return nil, &ConfigError{Field: "table", Reason: "cannot inspect table " + e.table, Err: err}
	}
	if len(missing) == len(ReferenceColumns) {
		s.Close()
		return nil, &ConfigError{Field: "table", Reason: fmt.Sprintf("table %q not found in %s", e.table, dbPath)}
	}
	if len(missing) > 0 {
		s.Close()
		return nil, &ConfigError{Field: "table", Reason: fmt.Sprintf("table %q lacks column(s) %v", e.table, missing)}
	}

	e.store = s
	e.exec, err = NewExecutor(s.DB(), e.table, e.timeout)
	if err != nil {
		s.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// BatchSize returns the configured batch size.
func (e *Engine) BatchSize() int { return e.size }

// Table returns the configured reference table name.
func (e *Engine) Table() string { return e.table }

// Count returns the number of rows in the reference table.
func (e *Engine) Count(ctx context.Context) (int64, error) {
	return e.store.CountRows(ctx, e.table)
}

// Lookup resolves every row of t, reading variant fields from the columns
// named by cols. Schema and configuration problems fail the call; a failed
// batch or a malformed returned row is recorded in Result.Diagnostics and
// the run continues. Cancelling ctx stops new batches from starting and
// Lookup returns ctx.Err().
func (e *Engine) Lookup(ctx context.Context, t Table, cols Columns) (*Result, error) {
	b, err := NewBatcher(t, cols, e.size)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, b)
}

// LookupRecords is Lookup for callers that already hold typed records.
func (e *Engine) LookupRecords(ctx context.Context, records []VariantRecord) (*Result, error) {
	b, err := NewRecordBatcher(records, e.size)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, b)
}

func (e *Engine) run(ctx context.Context, b *Batcher) (*Result, error) {
	start := time.Now()
	e.log.Info().
		Int("variants", len(b.Records())).
		Int("batches", b.Len()).
		Int("batch_size", e.size).
		Int("workers", e.workers).
		Msg("lookup started")

	var (
		res *Result
		err error
	)
	if e.workers > 1 && b.Len() > 1 {
		res, err = e.runParallel(ctx, b)
	} else {
		res, err = e.runSerial(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int("matches", len(res.Rows)).
		Int("failed_batches", len(res.FailedBatches)).
		Int("diagnostics", len(res.Diagnostics)).
		Dur("elapsed", time.Since(start)).
		Msg("lookup finished")
	return res, nil
}

// runSerial processes one batch at a time: build, execute, parse, append.
func (e *Engine) runSerial(ctx context.Context, b *Batcher) (*Result, error) {
	agg := NewAggregator(b.Len())
	var diags []Diagnostic

	for i, batch := range b.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := e.processBatch(ctx, i, batch)
		diags = append(diags, out.diags...)
		if err := e.record(agg, out); err != nil {
			return nil, err
		}
	}
	// A cancel during the last batch surfaces as a batch failure; report the
	// cancellation instead.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.result(agg, b.Len(), diags), nil
}

// batchOutcome is the product of one batch's pipeline.
type batchOutcome struct {
	index int
	rows  []MatchedSNP
	err   *BatchExecutionError
	diags []Diagnostic
}

func (e *Engine) processBatch(ctx context.Context, i int, batch Batch) batchOutcome {
	raw, err := e.exec.Execute(ctx, i, batch)
	if err != nil {
		var be *BatchExecutionError
		if !errors.As(err, &be) {
			be = &BatchExecutionError{Batch: i, Err: err}
		}
		e.log.Warn().Err(be.Err).Int("batch", i).Int("size", len(batch)).Msg("batch failed")
		return batchOutcome{index: i, err: be, diags: []Diagnostic{batchFailure(be)}}
	}

	rows, diags := ParseRows(i, raw)
	for _, d := range diags {
		e.log.Warn().Int("batch", d.Batch).Int("row", d.Row).Msg(d.Message)
	}
	e.log.Debug().
		Int("batch", i).
		Int("size", len(batch)).
		Int("returned", len(raw)).
		Int("matches", len(rows)).
		Msg("batch done")
	return batchOutcome{index: i, rows: rows, diags: diags}
}

func (e *Engine) record(agg *Aggregator, out batchOutcome) error {
	if out.err != nil {
		return agg.Fail(out.index, out.err)
	}
	return agg.Append(out.index, out.rows)
}

func (e *Engine) result(agg *Aggregator, batches int, diags []Diagnostic) *Result {
	return &Result{
		Rows:          agg.Table(),
		Diagnostics:   diags,
		FailedBatches: agg.Failed(),
		Batches:       batches,
	}
}
