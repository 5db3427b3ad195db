package rsmatch

// VariantRecord is one validated input variant. The two alleles are stored
// in input order; lookups treat (Allele1, Allele2) and (Allele2, Allele1) as
// the same variant.
type VariantRecord struct {
	Chromosome string
	Position   int64
	Allele1    string
	Allele2    string
}

// Batch is an ordered group of at most batch-size records.
type Batch []VariantRecord

// MatchedSNP is one row of the output table. The field set is fixed and does
// not depend on the caller's input column names.
type MatchedSNP struct {
	Chromosome string `json:"chromosome"`
	RsID       string `json:"rsID"`
	Position   int64  `json:"position"`
	Allele1    string `json:"allele1"`
	Allele2    string `json:"allele2"`
}

// ResultTable is the concatenation of every batch's matches in batch order.
type ResultTable []MatchedSNP

// OutputColumns are the column names of a ResultTable, in field order.
var OutputColumns = []string{"chromosome", "rsID", "position", "allele1", "allele2"}

// Columns names the input columns holding each variant field.
type Columns struct {
	Chromosome string
	Position   string
	Allele1    string
	Allele2    string
}

// DefaultColumns matches the reference table's own column names.
var DefaultColumns = Columns{
	Chromosome: "chr",
	Position:   "pos",
	Allele1:    "A1",
	Allele2:    "A2",
}

// names returns the column names in chromosome, position, allele1, allele2 order.
func (c Columns) names() []string {
	return []string{c.Chromosome, c.Position, c.Allele1, c.Allele2}
}

// RawRow is one row as returned by the reference store, one value per
// selected column.
type RawRow []any

// Result is the outcome of a Lookup.
type Result struct {
	Rows          ResultTable
	Diagnostics   []Diagnostic
	FailedBatches []int
	Batches       int
}
