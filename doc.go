// Package rsmatch resolves genomic variants (chromosome, position and two
// alleles) to reference SNP identifiers (rsIDs) by looking them up in a
// read-only SQLite reference table. A variant matches a stored SNP when
// chromosome and position are equal and the alleles are equal in either
// orientation: (A1, A2) or (A2, A1).
//
// # Pipeline
//
// A lookup runs every input variant through a fixed linear pipeline:
//
//  1. Batch: the input table is validated and split into consecutive
//     batches of at most the configured batch size ([NewBatcher]).
//  2. Build: each variant becomes a parameter-bound predicate covering both
//     allele orientations; a batch's predicates are ORed into one SELECT
//     ([BuildPredicate], [CombinePredicates], [BuildQuery]).
//  3. Execute: the batch query runs against the store under a per-batch
//     timeout ([Executor.Execute]).
//  4. Parse: returned rows are mapped onto the fixed [MatchedSNP] schema
//     ([ParseRows]).
//  5. Aggregate: batch results are concatenated in batch order
//     ([Aggregator]).
//
// One query per batch keeps the round-trip count proportional to the number
// of batches, and the batch size bound keeps each query under SQLite's
// host-parameter limit.
//
// # Usage
//
//	e, err := rsmatch.New("reference/1kg_snp.db", rsmatch.WithBatchSize(500))
//	if err != nil { ... }
//	defer e.Close()
//
//	t, err := rsmatch.ReadTable(f, '\t')
//	res, err := e.Lookup(ctx, t, rsmatch.Columns{
//		Chromosome: "CHR", Position: "BP", Allele1: "A1", Allele2: "A2",
//	})
//
// # Errors
//
// [*SchemaError] and [*ConfigError] fail a call before any batch runs.
// [*BatchExecutionError] and [*RowParseWarning] are recoverable: the
// affected batch or row contributes nothing to [Result.Rows] and is reported
// in [Result.Diagnostics].
//
// # Concurrency
//
// Batches run sequentially by default. [WithWorkers] enables a bounded
// worker pool; the result table is still assembled in batch order.
package rsmatch
