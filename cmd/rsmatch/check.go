package main

import (
	"github.com/jward/rsmatch"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the reference store is usable",
	Long:  "Opens the reference database read-only, checks the table has the chr, rsID, pos, A1 and A2 columns, and reports its row count.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	engine, err := rsmatch.New(cfg.DB, cfg.Options(log)...)
	if err != nil {
		return outputError(cmd, "check", err)
	}
	defer engine.Close()

	n, err := engine.Count(cmd.Context())
	if err != nil {
		return outputError(cmd, "check", err)
	}
	log.Debug().Str("db", cfg.DB).Int64("rows", n).Msg("reference store ok")

	return outputResult(cmd.OutOrStdout(), CLIResult{
		Command: "check",
		Results: CLICheck{DB: cfg.DB, Driver: cfg.Driver, Table: engine.Table(), Rows: n},
	})
}
