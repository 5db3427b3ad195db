package rsmatch

import (
	"fmt"
	"strings"
)

// SchemaError reports input that does not have the shape a lookup needs:
// missing required columns, or a row with an empty or malformed field.
// It fails the whole call before any batch runs.
type SchemaError struct {
	Missing []string // missing column names, in Columns order
	Row     int      // 1-based data row, 0 when the error is about columns
	Column  string
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema: missing required column(s): %s", strings.Join(e.Missing, ", "))
	}
	if e.Row == 0 {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: row %d column %q: %s", e.Row, e.Column, e.Reason)
}

// ConfigError reports an invalid setting: batch size, table name, driver or
// an unusable store location.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BatchExecutionError reports a failed store round-trip for one batch. It is
// recoverable: the batch contributes no rows and the run continues.
type BatchExecutionError struct {
	Batch int
	Err   error
}

func (e *BatchExecutionError) Error() string {
	return fmt.Sprintf("batch %d: %v", e.Batch, e.Err)
}

func (e *BatchExecutionError) Unwrap() error { return e.Err }

// RowParseWarning reports a returned row that could not be mapped onto
// MatchedSNP. The row is dropped and the batch continues.
type RowParseWarning struct {
	Batch  int
	Row    int
	Reason string
}

func (e *RowParseWarning) Error() string {
	return fmt.Sprintf("batch %d row %d: %s", e.Batch, e.Row, e.Reason)
}

// Severity classifies a Diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is an observational record of a recoverable problem. Diagnostics
// never change the returned rows.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Batch    int      `json:"batch"`
	Row      int      `json:"row"` // -1 for batch-level diagnostics
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

func batchFailure(err *BatchExecutionError) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Batch:    err.Batch,
		Row:      -1,
		Message:  err.Error(),
		Err:      err,
	}
}

func rowWarning(w *RowParseWarning) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Batch:    w.Batch,
		Row:      w.Row,
		Message:  w.Error(),
		Err:      w,
	}
}
