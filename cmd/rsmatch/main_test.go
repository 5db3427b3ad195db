package main

import (
	"bytes"
	"testing"

	"github.com/jward/rsmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	for _, f := range []string{"json", "tsv", "text"} {
		assert.NoError(t, validateFormat(f), f)
	}
	assert.Error(t, validateFormat("xml"))
}

func TestFormatMatchesTSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	formatMatchesTSV(&buf, []CLIMatch{
		{Chromosome: "1", RsID: "rs1", Position: 123456, Allele1: "G", Allele2: "A"},
	})
	assert.Equal(t, "chromosome\trsID\tposition\tallele1\tallele2\n1\trs1\t123456\tG\tA\n", buf.String())
}

func TestOutputResultText_Lookup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	batches := 3
	err := outputResultText(&buf, CLIResult{
		Command:       "lookup",
		Results:       []CLIMatch{{Chromosome: "2", RsID: "rs7", Position: 5, Allele1: "C", Allele2: "T"}},
		Diagnostics:   []CLIDiagnostic{{Severity: "error", Batch: 1, Message: "batch 1: boom"}},
		FailedBatches: []int{1},
		Batches:       &batches,
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "RSID")
	assert.Contains(t, out, "rs7")
	assert.Contains(t, out, "error: batch 1: boom")
	assert.Contains(t, out, "1 of 3 batches failed")
}

func TestOutputResultText_Unsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := outputResultText(&buf, CLIResult{Results: 42})
	assert.Error(t, err)
}

func TestDiagnosticsToCLI(t *testing.T) {
	t.Parallel()
	got := diagnosticsToCLI([]rsmatch.Diagnostic{
		{Severity: rsmatch.SeverityError, Batch: 0, Row: -1, Message: "batch 0: down"},
		{Severity: rsmatch.SeverityWarning, Batch: 2, Row: 4, Message: "bad row"},
	})
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Row)
	require.NotNil(t, got[1].Row)
	assert.Equal(t, 4, *got[1].Row)
	assert.Nil(t, diagnosticsToCLI(nil))
}

func TestMatchesToCLI(t *testing.T) {
	t.Parallel()
	got := matchesToCLI(rsmatch.ResultTable{{Chromosome: "X", RsID: "rs9", Position: 1, Allele1: "A", Allele2: "T"}})
	assert.Equal(t, []CLIMatch{{Chromosome: "X", RsID: "rs9", Position: 1, Allele1: "A", Allele2: "T"}}, got)
}
