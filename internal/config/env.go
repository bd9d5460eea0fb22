package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

// envValues mirrors the overridable flags. Pointer fields stay nil when the
// variable is unset, which distinguishes "absent" from a zero value.
type envValues struct {
	Experiment         *string        `env:"EXPERIMENT"`
	Trials             *uint64        `env:"TRIALS"`
	Workers            *int           `env:"WORKERS"`
	Seed               *int64         `env:"SEED"`
	Confidence         *float64       `env:"CONFIDENCE"`
	Bias               *float64       `env:"BIAS"`
	Group              *int           `env:"GROUP"`
	Days               *int           `env:"DAYS"`
	FASTA              *string        `env:"FASTA"`
	Spectrum           *string        `env:"SPECTRUM"`
	Timeout            *time.Duration `env:"TIMEOUT"`
	Quiet              *bool          `env:"QUIET"`
	Verbose            *bool          `env:"VERBOSE"`
	TUI                *bool          `env:"TUI"`
	NoColor            *bool          `env:"NO_COLOR"`
	OutputFile         *string        `env:"OUTPUT"`
	MetricsAddr        *string        `env:"METRICS_ADDR"`
	LogLevel           *string        `env:"LOG_LEVEL"`
	CalibrationProfile *string        `env:"CALIBRATION_PROFILE"`
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either their short or long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps the flag names of one setting to the function that
// copies the parsed environment value into the configuration.
type envOverride struct {
	flags []string
	apply func(*AppConfig, *envValues)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

var envOverrides = []envOverride{
	{[]string{"experiment", "e"}, func(c *AppConfig, e *envValues) { set(&c.Experiment, e.Experiment) }},
	{[]string{"trials", "n"}, func(c *AppConfig, e *envValues) { set(&c.Trials, e.Trials) }},
	{[]string{"workers"}, func(c *AppConfig, e *envValues) { set(&c.Workers, e.Workers) }},
	{[]string{"seed"}, func(c *AppConfig, e *envValues) { set(&c.Seed, e.Seed) }},
	{[]string{"confidence"}, func(c *AppConfig, e *envValues) { set(&c.Confidence, e.Confidence) }},
	{[]string{"bias"}, func(c *AppConfig, e *envValues) { set(&c.Bias, e.Bias) }},
	{[]string{"group"}, func(c *AppConfig, e *envValues) { set(&c.Group, e.Group) }},
	{[]string{"days"}, func(c *AppConfig, e *envValues) { set(&c.Days, e.Days) }},
	{[]string{"fasta"}, func(c *AppConfig, e *envValues) { set(&c.FASTA, e.FASTA) }},
	{[]string{"spectrum"}, func(c *AppConfig, e *envValues) { set(&c.Spectrum, e.Spectrum) }},
	{[]string{"timeout"}, func(c *AppConfig, e *envValues) { set(&c.Timeout, e.Timeout) }},
	{[]string{"quiet", "q"}, func(c *AppConfig, e *envValues) { set(&c.Quiet, e.Quiet) }},
	{[]string{"verbose", "v"}, func(c *AppConfig, e *envValues) { set(&c.Verbose, e.Verbose) }},
	{[]string{"tui"}, func(c *AppConfig, e *envValues) { set(&c.TUI, e.TUI) }},
	{[]string{"no-color"}, func(c *AppConfig, e *envValues) { set(&c.NoColor, e.NoColor) }},
	{[]string{"output", "o"}, func(c *AppConfig, e *envValues) { set(&c.OutputFile, e.OutputFile) }},
	{[]string{"metrics-addr"}, func(c *AppConfig, e *envValues) { set(&c.MetricsAddr, e.MetricsAddr) }},
	{[]string{"log-level"}, func(c *AppConfig, e *envValues) { set(&c.LogLevel, e.LogLevel) }},
	{[]string{"calibration-profile"}, func(c *AppConfig, e *envValues) { set(&c.CalibrationProfile, e.CalibrationProfile) }},
}

// applyEnvOverrides applies MCSIM_* variables to every setting whose flag
// was not given explicitly: CLI flags > environment > defaults. A variable
// that cannot be parsed is a ConfigError.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) error {
	var values envValues
	if err := env.ParseWithOptions(&values, env.Options{Prefix: EnvPrefix}); err != nil {
		return apperrors.NewConfigError("invalid environment: %v", err)
	}
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(cfg, &values)
	}
	return nil
}

// EnvKeys lists the recognised environment variables, for help output.
func EnvKeys() []string {
	return []string{
		EnvPrefix + "EXPERIMENT", EnvPrefix + "TRIALS", EnvPrefix + "WORKERS", EnvPrefix + "SEED",
		EnvPrefix + "CONFIDENCE", EnvPrefix + "BIAS", EnvPrefix + "GROUP", EnvPrefix + "DAYS",
		EnvPrefix + "FASTA", EnvPrefix + "SPECTRUM", EnvPrefix + "TIMEOUT", EnvPrefix + "QUIET",
		EnvPrefix + "VERBOSE", EnvPrefix + "TUI", EnvPrefix + "NO_COLOR", EnvPrefix + "OUTPUT",
		EnvPrefix + "METRICS_ADDR", EnvPrefix + "LOG_LEVEL", EnvPrefix + "CALIBRATION_PROFILE",
	}
}

