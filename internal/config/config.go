// Package config parses and validates the mcsim command line.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/simulation"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MCSIM_"

	// ExperimentAll selects every runnable experiment.
	ExperimentAll = "all"

	DefaultExperiment = "pi"
	DefaultTrials     = 10_000_000
	DefaultSeed       = 42
	DefaultConfidence = 0.95
	DefaultBias       = 0.5
	DefaultGroup      = 23
	DefaultDays       = 365
	DefaultSpectrum   = "covid"
	DefaultTimeout    = 10 * time.Minute
	DefaultLogLevel   = "warn"
)

// AppConfig is the fully resolved configuration of one invocation.
type AppConfig struct {
	Experiment string
	Trials     uint64
	Workers    int
	Seed       int64
	Confidence float64

	Bias     float64
	Group    int
	Days     int
	FASTA    string
	Spectrum string

	Timeout     time.Duration
	Quiet       bool
	Verbose     bool
	TUI         bool
	NoColor     bool
	OutputFile  string
	MetricsAddr string
	LogLevel    string

	Calibrate          bool
	CalibrationProfile string
	Completion         string
	ShowVersion        bool
}

// ToSimulationOptions returns the engine options for this configuration.
func (c AppConfig) ToSimulationOptions() simulation.Options {
	return simulation.Options{Trials: c.Trials, Workers: c.Workers, Seed: c.Seed}
}

// Validate checks the configuration against the known experiments.
//
// Parameters:
//   - experiments: The experiment names accepted by -experiment.
//
// Returns:
//   - error: A ConfigError describing the first invalid setting, or nil.
func (c AppConfig) Validate(experiments []string) error {
	switch {
	case c.Trials == 0:
		return apperrors.NewConfigError("number of trials must be positive")
	case c.Workers < 0:
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	case !(c.Confidence > 0 && c.Confidence < 1):
		return apperrors.NewConfigError("confidence level must be in (0, 1), got %v", c.Confidence)
	case !(c.Bias >= 0 && c.Bias <= 1):
		return apperrors.NewConfigError("bias must be in [0, 1], got %v", c.Bias)
	case c.Group < 1:
		return apperrors.NewConfigError("group size must be at least 1, got %d", c.Group)
	case c.Days < 1:
		return apperrors.NewConfigError("days must be at least 1, got %d", c.Days)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	name := strings.ToLower(c.Experiment)
	if name != ExperimentAll && !slices.Contains(experiments, name) {
		return apperrors.NewConfigError("unknown experiment %q (available: %s, %s)", c.Experiment, strings.Join(experiments, ", "), ExperimentAll)
	}
	if name == "mutation" && c.FASTA == "" {
		return apperrors.NewConfigError("the mutation experiment requires -fasta")
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applying MCSIM_* environment
// overrides for every flag that was not given explicitly.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Destination for usage and parse errors.
//   - experiments: The experiment names accepted by -experiment.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, or a parse or validation error.
func ParseConfig(programName string, args []string, errorWriter io.Writer, experiments []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\nParallel Monte Carlo simulations.\n\nOptions:\n", programName)
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment (used when the matching flag is not set):\n  %s\n", strings.Join(EnvKeys(), " "))
	}

	cfg := AppConfig{}
	fs.StringVar(&cfg.Experiment, "experiment", DefaultExperiment, fmt.Sprintf("Experiment to run (%s, %s).", strings.Join(experiments, ", "), ExperimentAll))
	fs.StringVar(&cfg.Experiment, "e", DefaultExperiment, "Shorthand for -experiment.")
	fs.Uint64Var(&cfg.Trials, "trials", DefaultTrials, "Total number of trials.")
	fs.Uint64Var(&cfg.Trials, "n", DefaultTrials, "Shorthand for -trials.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of worker goroutines (0 = calibrated or all CPUs).")
	fs.Int64Var(&cfg.Seed, "seed", DefaultSeed, "Base seed for the random streams.")
	fs.Float64Var(&cfg.Confidence, "confidence", DefaultConfidence, "Confidence level of reported intervals.")
	fs.Float64Var(&cfg.Bias, "bias", DefaultBias, "Probability of heads for the coin experiment.")
	fs.IntVar(&cfg.Group, "group", DefaultGroup, "Group size for the birthday experiment.")
	fs.IntVar(&cfg.Days, "days", DefaultDays, "Days in a year for the birthday experiment.")
	fs.StringVar(&cfg.FASTA, "fasta", "", "FASTA file (plain or gzip, - for stdin) for the mutation experiment.")
	fs.StringVar(&cfg.Spectrum, "spectrum", DefaultSpectrum, "Natural mutation spectrum for the artificiality experiment.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print a single result line per experiment.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print run metadata with the report.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run in the interactive dashboard.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Also write the report to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure throughput per worker count and save the best.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile path (default ~/.mcsim_calibration.json).")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version information.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorWriter, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	cfg.Experiment = strings.ToLower(cfg.Experiment)

	if cfg.Completion != "" || cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.Validate(experiments); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}
