package rsmatch

import (
	"iter"
	"strconv"
	"strings"
)

// MaxBatchSize bounds a batch so one combined query stays under SQLite's
// host-parameter ceiling (32766). Each variant binds six values.
const MaxBatchSize = 32766 / paramsPerVariant

// DefaultBatchSize is used when no batch size is configured.
const DefaultBatchSize = 100

// Batcher splits validated variant records into consecutive batches.
// It is restartable: every call to All walks the records from the start.
type Batcher struct {
	records []VariantRecord
	size    int
}

// NewBatcher validates the table against cols and converts every row into a
// VariantRecord. Validation happens up front, so a bad row fails the call
// before any batch is produced.
func NewBatcher(t Table, cols Columns, batchSize int) (*Batcher, error) {
	if err := validateBatchSize(batchSize); err != nil {
		return nil, err
	}
	records, err := recordsFromTable(t, cols)
	if err != nil {
		return nil, err
	}
	return &Batcher{records: records, size: batchSize}, nil
}

// NewRecordBatcher batches records that are already typed. Each record is
// still checked for empty fields.
func NewRecordBatcher(records []VariantRecord, batchSize int) (*Batcher, error) {
	if err := validateBatchSize(batchSize); err != nil {
		return nil, err
	}
	for i, r := range records {
		if err := validateRecord(r, i+1); err != nil {
			return nil, err
		}
	}
	return &Batcher{records: records, size: batchSize}, nil
}

func validateBatchSize(n int) error {
	if n < 1 {
		return &ConfigError{Field: "batch_size", Reason: "must be at least 1, got " + strconv.Itoa(n)}
	}
	if n > MaxBatchSize {
		return &ConfigError{Field: "batch_size", Reason: "must be at most " + strconv.Itoa(MaxBatchSize) + ", got " + strconv.Itoa(n)}
	}
	return nil
}

// Records returns the validated records in input order.
func (b *Batcher) Records() []VariantRecord { return b.records }

// Len returns the number of batches All yields.
func (b *Batcher) Len() int {
	return (len(b.records) + b.size - 1) / b.size
}

// All yields (index, batch) pairs in input order. Batches share the
// Batcher's backing array and must not be modified.
func (b *Batcher) All() iter.Seq2[int, Batch] {
	return func(yield func(int, Batch) bool) {
		for i, start := 0, 0; start < len(b.records); i, start = i+1, start+b.size {
			end := min(start+b.size, len(b.records))
			if !yield(i, Batch(b.records[start:end:end])) {
				return
			}
		}
	}
}

// Batch returns batch i, or nil when i is out of range.
func (b *Batcher) Batch(i int) Batch {
	start := i * b.size
	if i < 0 || start >= len(b.records) {
		return nil
	}
	end := min(start+b.size, len(b.records))
	return Batch(b.records[start:end:end])
}

func recordsFromTable(t Table, cols Columns) ([]VariantRecord, error) {
	names := cols.names()
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		idx[i] = t.ColumnIndex(name)
		switch {
		case name == "":
			missing = append(missing, "<unset>")
		case idx[i] < 0:
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	records := make([]VariantRecord, 0, len(t.Rows))
	for r, row := range t.Rows {
		rowNum := r + 1
		field := func(col int) (string, error) {
			if idx[col] >= len(row) {
				return "", &SchemaError{Row: rowNum, Column: names[col], Reason: "field missing"}
			}
			return strings.TrimSpace(row[idx[col]]), nil
		}

		var vals [4]string
		for c := range vals {
			v, err := field(c)
			if err != nil {
				return nil, err
			}
			vals[c] = v
		}

		rec := VariantRecord{Chromosome: vals[0], Allele1: vals[2], Allele2: vals[3]}
		if vals[1] == "" {
			return nil, &SchemaError{Row: rowNum, Column: names[1], Reason: "empty value"}
		}
		pos, err := strconv.ParseInt(vals[1], 10, 64)
		if err != nil || pos < 0 {
			return nil, &SchemaError{Row: rowNum, Column: names[1], Reason: "position must be a non-negative integer, got " + strconv.Quote(vals[1])}
		}
		rec.Position = pos

		if err := validateRecordNamed(rec, rowNum, cols); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func validateRecord(r VariantRecord, row int) error {
	return validateRecordNamed(r, row, DefaultColumns)
}

func validateRecordNamed(r VariantRecord, row int, cols Columns) error {
	switch {
	case r.Chromosome == "":
		return &SchemaError{Row: row, Column: cols.Chromosome, Reason: "empty value"}
	case r.Position < 0:
		return &SchemaError{Row: row, Column: cols.Position, Reason: "negative position"}
	case r.Allele1 == "":
		return &SchemaError{Row: row, Column: cols.Allele1, Reason: "empty value"}
	case r.Allele2 == "":
		return &SchemaError{Row: row, Column: cols.Allele2, Reason: "empty value"}
	}
	return nil
}
