package rsmatch

import (
	"context"
	"sync"
)

// batchJob is one unit of work for a parallel lookup worker.
type batchJob struct {
	index int
	batch Batch
}

// runParallel looks up batches with a bounded worker pool:
//
//	Producer:  feeds batches in order until done or ctx is cancelled.
//	Workers:   build, execute and parse batches concurrently over the shared
//	           *sql.DB, which is safe for concurrent reads.
//	Collector: records each outcome into its aggregator slot, so the final
//	           table is in batch order regardless of completion order.
func (e *Engine) runParallel(ctx context.Context, b *Batcher) (*Result, error) {
	numWorkers := min(e.workers, b.Len())

	jobs := make(chan batchJob)
	outcomes := make(chan batchOutcome, numWorkers)

	go func() {
		defer close(jobs)
		for i, batch := range b.All() {
			select {
			case jobs <- batchJob{index: i, batch: batch}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcomes <- e.processBatch(ctx, job.index, job.batch)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	agg := NewAggregator(b.Len())
	perBatch := make([][]Diagnostic, b.Len())
	var recordErr error
	for out := range outcomes {
		perBatch[out.index] = out.diags
		if err := e.record(agg, out); err != nil && recordErr == nil {
			recordErr = err
		}
	}
	if recordErr != nil {
		return nil, recordErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Diagnostics follow batch order too, so serial and parallel runs report
	// identically.
	var diags []Diagnostic
	for _, d := range perBatch {
		diags = append(diags, d...)
	}
	return e.result(agg, b.Len(), diags), nil
}
