// Package app wires configuration, logging, metrics and the run modes of
// the mcsim binary.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/mcsim/internal/calibration"
	"github.com/agbru/mcsim/internal/cli"
	"github.com/agbru/mcsim/internal/config"
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/logging"
	"github.com/agbru/mcsim/internal/metrics"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/server"
	"github.com/agbru/mcsim/internal/tui"
	"github.com/agbru/mcsim/internal/ui"
)

// Application represents the mcsim application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Metrics
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the stderr logger built from -log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithMetrics sets the collector set shared by the engine and the
// metrics endpoint.
func WithMetrics(m *metrics.Metrics) AppOption {
	return func(a *Application) { a.Metrics = m }
}

// New creates an Application by parsing command-line arguments. args[0]
// is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "mcsim"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, orchestration.ExperimentNames())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(errWriter, "Configuration error: invalid log level %q\n", cfg.LogLevel)
		return nil, apperrors.NewConfigError("invalid log level %q", cfg.LogLevel)
	}

	if cfg.Completion == "" && !cfg.Calibrate {
		cfg = config.ApplyWorkerDefaults(cfg, calibration.LoadCachedWorkers(cfg.CalibrationProfile))
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		out := zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor}
		app.Logger = logging.NewZerologAdapter(zerolog.New(out).Level(level).With().Timestamp().Logger())
	}
	if app.Metrics == nil {
		app.Metrics = metrics.New()
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetricsServer()
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		defer stop()
	}

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, orchestration.ExperimentNames()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// startMetricsServer serves /metrics until the returned stop function runs.
func (a *Application) startMetricsServer() (func(), error) {
	srv := server.New(a.Config.MetricsAddr, a.Metrics, a.Logger)
	if err := srv.Start(); err != nil {
		return nil, err
	}
	return func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			a.Logger.Error("metrics server shutdown", err)
		}
	}, nil
}

// withLifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCalibration runs the worker calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()
	return calibration.RunCalibration(ctx, a.Config, out, a.Logger)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	jobs, err := orchestration.BuildJobs(a.Config)
	if err != nil {
		return apperrors.HandleExecutionError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()
	return tui.Run(ctx, jobs, a.Config, a.simulationOptions(), a.Metrics, Version)
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
