package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jward/rsmatch"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [input]",
	Short: "Look up rsIDs for a table of variants",
	Long: `Reads a delimited variant table (header row required) from the given file,
or stdin when the argument is omitted or "-", and writes the matched SNPs.

Batches that fail against the store are reported as diagnostics and skipped;
the command still succeeds with the remaining matches.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	f := lookupCmd.Flags()
	f.Int("batch-size", rsmatch.DefaultBatchSize, "variants per store query")
	f.Int("workers", 1, "batches queried concurrently")
	f.Duration("timeout", rsmatch.DefaultTimeout, "per-batch query timeout (0 disables)")
	f.String("delimiter", `\t`, `input field delimiter: \t, comma or a single character`)
	f.String("chr-col", rsmatch.DefaultColumns.Chromosome, "input column holding the chromosome")
	f.String("pos-col", rsmatch.DefaultColumns.Position, "input column holding the position")
	f.String("a1-col", rsmatch.DefaultColumns.Allele1, "input column holding allele 1")
	f.String("a2-col", rsmatch.DefaultColumns.Allele2, "input column holding allele 2")
}

func runLookup(cmd *cobra.Command, args []string) error {
	table, err := readInput(cmd, args)
	if err != nil {
		return outputError(cmd, "lookup", err)
	}

	engine, err := rsmatch.New(cfg.DB, cfg.Options(log)...)
	if err != nil {
		return outputError(cmd, "lookup", err)
	}
	defer engine.Close()

	res, err := engine.Lookup(cmd.Context(), table, cfg.RsmatchColumns())
	if err != nil {
		return outputError(cmd, "lookup", err)
	}

	batches := res.Batches
	return outputResult(cmd.OutOrStdout(), CLIResult{
		Command:       "lookup",
		Results:       matchesToCLI(res.Rows),
		Diagnostics:   diagnosticsToCLI(res.Diagnostics),
		FailedBatches: res.FailedBatches,
		Batches:       &batches,
	})
}

// readInput reads the variant table from args[0], or stdin for "-" or no
// argument.
func readInput(cmd *cobra.Command, args []string) (rsmatch.Table, error) {
	comma, err := cfg.Comma()
	if err != nil {
		return rsmatch.Table{}, err
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return rsmatch.Table{}, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return rsmatch.ReadTable(r, comma)
}

// outputResult writes a CLIResult in the selected format.
func outputResult(w io.Writer, result CLIResult) error {
	switch flagFormat {
	case "text":
		return outputResultText(w, result)
	case "tsv":
		return outputResultTSV(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. Otherwise it goes to stderr.
func outputError(cmd *cobra.Command, command string, err error) error {
	errorHandled = true
	if flagFormat != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}
