package main

import "github.com/jward/rsmatch"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command       string          `json:"command"`
	Results       any             `json:"results"`
	Diagnostics   []CLIDiagnostic `json:"diagnostics,omitempty"`
	FailedBatches []int           `json:"failed_batches,omitempty"`
	Batches       *int            `json:"batches,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// CLIMatch is one matched SNP.
type CLIMatch struct {
	Chromosome string `json:"chromosome"`
	RsID       string `json:"rsID"`
	Position   int64  `json:"position"`
	Allele1    string `json:"allele1"`
	Allele2    string `json:"allele2"`
}

// CLIDiagnostic is a JSON-friendly diagnostic.
type CLIDiagnostic struct {
	Severity string `json:"severity"`
	Batch    int    `json:"batch"`
	Row      *int   `json:"row,omitempty"`
	Message  string `json:"message"`
}

// CLICheck describes a reference store.
type CLICheck struct {
	DB     string `json:"db"`
	Driver string `json:"driver"`
	Table  string `json:"table"`
	Rows   int64  `json:"rows"`
}

func matchesToCLI(rows rsmatch.ResultTable) []CLIMatch {
	out := make([]CLIMatch, len(rows))
	for i, r := range rows {
		out[i] = CLIMatch(r)
	}
	return out
}

func diagnosticsToCLI(diags []rsmatch.Diagnostic) []CLIDiagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]CLIDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = CLIDiagnostic{
			Severity: string(d.Severity),
			Batch:    d.Batch,
			Message:  d.Message,
		}
		if d.Row >= 0 {
			row := d.Row
			out[i].Row = &row
		}
	}
	return out
}
