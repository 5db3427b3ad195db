package rsmatch

import "fmt"

type batchSlot struct {
	rows   []MatchedSNP
	failed error
	done   bool
}

// Aggregator owns the per-batch results of one lookup and assembles them
// into a ResultTable in batch order. It holds one slot per batch, so
// batches may be filled in any order.
type Aggregator struct {
	slots []batchSlot
}

// NewAggregator returns an Aggregator for n batches.
func NewAggregator(n int) *Aggregator {
	return &Aggregator{slots: make([]batchSlot, n)}
}

func (a *Aggregator) slot(index int) (*batchSlot, error) {
	if index < 0 || index >= len(a.slots) {
		return nil, fmt.Errorf("aggregate: batch index %d out of range [0,%d)", index, len(a.slots))
	}
	s := &a.slots[index]
	if s.done {
		return nil, fmt.Errorf("aggregate: batch %d already recorded", index)
	}
	return s, nil
}

// Append records the parsed matches of a batch. An empty slice is valid.
func (a *Aggregator) Append(index int, rows []MatchedSNP) error {
	s, err := a.slot(index)
	if err != nil {
		return err
	}
	s.rows = rows
	s.done = true
	return nil
}

// Fail marks a batch as failed; it contributes no rows.
func (a *Aggregator) Fail(index int, cause error) error {
	s, err := a.slot(index)
	if err != nil {
		return err
	}
	s.failed = cause
	s.done = true
	return nil
}

// Failed returns the indexes of failed batches in ascending order.
func (a *Aggregator) Failed() []int {
	var out []int
	for i, s := range a.slots {
		if s.failed != nil {
			out = append(out, i)
		}
	}
	return out
}

// Table concatenates all recorded batches in index order. Failed, empty and
// unrecorded batches are skipped. Rows are never deduplicated.
func (a *Aggregator) Table() ResultTable {
	n := 0
	for _, s := range a.slots {
		n += len(s.rows)
	}
	out := make(ResultTable, 0, n)
	for _, s := range a.slots {
		if s.failed != nil {
			continue
		}
		out = append(out, s.rows...)
	}
	return out
}
