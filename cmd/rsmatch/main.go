package main

import (
	"fmt"
	"os"

	"github.com/jward/rsmatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagFormat string

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg config.Config
	log zerolog.Logger
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "rsmatch",
	Short:         "Resolve genomic variants to rsIDs",
	Long:          "rsmatch looks up (chromosome, position, allele1, allele2) variants in a read-only SQLite reference table, matching either allele orientation, and reports their rsIDs.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(flagConfig, cmd.Flags())
		if err != nil {
			return outputError(cmd, cmd.Name(), err)
		}
		if err := validateFormat(c.Format); err != nil {
			return outputError(cmd, cmd.Name(), err)
		}
		cfg = c
		flagFormat = cfg.Format
		log = newLogger(cfg.LogLevel)
		return nil
	},
	// No Run — prints help by default.
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.String("db", config.DefaultDBPath, "reference SQLite database path")
	pf.String("driver", "sqlite3", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	pf.String("table", "snp", "reference table name")
	pf.String("log-level", "info", "log level: trace|debug|info|warn|error")
	pf.StringVar(&flagFormat, "format", "json", "output format: json|tsv|text")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(checkCmd)
}

// newLogger returns a console logger on stderr. Levels were validated by
// config.Load.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
