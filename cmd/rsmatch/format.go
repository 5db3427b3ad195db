package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jward/rsmatch"
)

// formatMatchesText formats CLIMatch results as aligned columns.
func formatMatchesText(w io.Writer, matches []CLIMatch) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHROMOSOME\tRSID\tPOSITION\tALLELE1\tALLELE2")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			m.Chromosome, m.RsID, m.Position, m.Allele1, m.Allele2)
	}
	tw.Flush()
}

// formatMatchesTSV writes matches as a tab-separated table with the fixed
// output header.
func formatMatchesTSV(w io.Writer, matches []CLIMatch) {
	fmt.Fprintln(w, strings.Join(rsmatch.OutputColumns, "\t"))
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			m.Chromosome, m.RsID, m.Position, m.Allele1, m.Allele2)
	}
}

// formatCheckText formats CLICheck as readable text.
func formatCheckText(w io.Writer, c CLICheck) {
	fmt.Fprintf(w, "Database: %s\n", c.DB)
	fmt.Fprintf(w, "Driver: %s\n", c.Driver)
	fmt.Fprintf(w, "Table: %s\n", c.Table)
	fmt.Fprintf(w, "Rows: %d\n", c.Rows)
}

// formatDiagnosticsText writes diagnostics, one per line.
func formatDiagnosticsText(w io.Writer, diags []CLIDiagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d.Message)
	}
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type. Diagnostics go after the results.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []CLIMatch:
		formatMatchesText(w, v)
	case CLICheck:
		formatCheckText(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(w)
		formatDiagnosticsText(w, result.Diagnostics)
	}
	if result.Batches != nil && len(result.FailedBatches) > 0 {
		fmt.Fprintf(w, "\n%d of %d batches failed\n", len(result.FailedBatches), *result.Batches)
	}
	return nil
}

// outputResultTSV writes results as TSV. Diagnostics are not part of the
// table; they are already logged to stderr.
func outputResultTSV(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []CLIMatch:
		formatMatchesTSV(w, v)
	case CLICheck:
		fmt.Fprintln(w, "db\tdriver\ttable\trows")
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", v.DB, v.Driver, v.Table, v.Rows)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for tsv format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "tsv", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(validFormats, ", "))
}
