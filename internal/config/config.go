// Package config loads rsmatch settings from defaults, an optional YAML file,
// RSMATCH_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jward/rsmatch"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RSMATCH_BATCH_SIZE or RSMATCH_COLUMNS_CHROMOSOME.
const EnvPrefix = "RSMATCH"

// DefaultDBPath is the reference store location used when none is given.
const DefaultDBPath = "reference/1kg_snp.db"

// Columns names the input columns holding each variant field.
type Columns struct {
	Chromosome string `mapstructure:"chromosome"`
	Position   string `mapstructure:"position"`
	Allele1    string `mapstructure:"allele1"`
	Allele2    string `mapstructure:"allele2"`
}

// Config holds every rsmatch setting.
type Config struct {
	DB        string        `mapstructure:"db"`
	Driver    string        `mapstructure:"driver"`
	Table     string        `mapstructure:"table"`
	BatchSize int           `mapstructure:"batch_size"`
	Workers   int           `mapstructure:"workers"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
	Format    string        `mapstructure:"format"`
	Delimiter string        `mapstructure:"delimiter"`
	Columns   Columns       `mapstructure:"columns"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"db":         DefaultDBPath,
		"driver":     rsmatch.DefaultDriver,
		"table":      rsmatch.DefaultTable,
		"batch_size": rsmatch.DefaultBatchSize,
		"workers":    1,
		"timeout":    rsmatch.DefaultTimeout,
		"log_level":  "info",
		"format":     "json",
		"delimiter":  `\t`,
		"columns": map[string]any{
			"chromosome": rsmatch.DefaultColumns.Chromosome,
			"position":   rsmatch.DefaultColumns.Position,
			"allele1":    rsmatch.DefaultColumns.Allele1,
			"allele2":    rsmatch.DefaultColumns.Allele2,
		},
	}
}

// FlagKeys maps command-line flag names to config keys. Flags that are not
// defined on the FlagSet passed to Load are skipped.
var FlagKeys = map[string]string{
	"db":         "db",
	"driver":     "driver",
	"table":      "table",
	"batch-size": "batch_size",
	"workers":    "workers",
	"timeout":    "timeout",
	"log-level":  "log_level",
	"format":     "format",
	"delimiter":  "delimiter",
	"chr-col":    "columns.chromosome",
	"pos-col":    "columns.position",
	"a1-col":     "columns.allele1",
	"a2-col":     "columns.allele2",
}

// Load resolves the configuration. configFile may be empty; a named file
// that does not exist is an error, while no file at all just means defaults.
// Only flags the user actually set override lower layers.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &rsmatch.ConfigError{Field: "config", Reason: "cannot read " + configFile, Err: err}
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &rsmatch.ConfigError{Field: "config", Reason: "cannot decode settings", Err: err}
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that can be checked without opening the store.
func (c Config) Validate() error {
	var errs []error
	if c.DB == "" {
		errs = append(errs, &rsmatch.ConfigError{Field: "db", Reason: "must not be empty"})
	}
	if c.BatchSize < 1 || c.BatchSize > rsmatch.MaxBatchSize {
		errs = append(errs, &rsmatch.ConfigError{Field: "batch_size", Reason: fmt.Sprintf("must be in [1,%d], got %d", rsmatch.MaxBatchSize, c.BatchSize)})
	}
	if c.Workers < 1 {
		errs = append(errs, &rsmatch.ConfigError{Field: "workers", Reason: fmt.Sprintf("must be at least 1, got %d", c.Workers)})
	}
	if c.Timeout < 0 {
		errs = append(errs, &rsmatch.ConfigError{Field: "timeout", Reason: "must not be negative"})
	}
	if err := rsmatch.ValidateTableName(c.Table); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, &rsmatch.ConfigError{Field: "log_level", Reason: "unknown level " + c.LogLevel, Err: err})
	}
	if _, err := c.Comma(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Comma returns the input field delimiter. Accepts a single character or
// the escapes `\t`, "tab" and "comma".
func (c Config) Comma() (rune, error) {
	switch c.Delimiter {
	case `\t`, "\t", "tab", "":
		return '\t', nil
	case ",", "comma":
		return ',', nil
	}
	r := []rune(c.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return 0, &rsmatch.ConfigError{Field: "delimiter", Reason: fmt.Sprintf("must be a single character, got %q", c.Delimiter)}
	}
	return r[0], nil
}

// RsmatchColumns converts the column settings for the library.
func (c Config) RsmatchColumns() rsmatch.Columns {
	return rsmatch.Columns{
		Chromosome: c.Columns.Chromosome,
		Position:   c.Columns.Position,
		Allele1:    c.Columns.Allele1,
		Allele2:    c.Columns.Allele2,
	}
}

// Options converts the engine settings into rsmatch options.
func (c Config) Options(log zerolog.Logger) []rsmatch.Option {
	return []rsmatch.Option{
		rsmatch.WithDriver(c.Driver),
		rsmatch.WithTable(c.Table),
		rsmatch.WithBatchSize(c.BatchSize),
		rsmatch.WithWorkers(c.Workers),
		rsmatch.WithTimeout(c.Timeout),
		rsmatch.WithLogger(log),
	}
}
