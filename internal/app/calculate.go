package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/mcsim/internal/cli"
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/logging"
	"github.com/agbru/mcsim/internal/metrics"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/simulation"
	"github.com/agbru/mcsim/internal/ui"
)

// simulationOptions returns the engine options shared by every job.
func (a *Application) simulationOptions() simulation.Options {
	opts := a.Config.ToSimulationOptions()
	opts.Observer = a.Metrics
	opts.Logger = a.Logger
	return opts
}

// runCalculate runs the selected experiments in the terminal.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	jobs, err := orchestration.BuildJobs(a.Config)
	if err != nil {
		return apperrors.HandleExecutionError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(jobs, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	a.Logger.Info("run started",
		logging.String("experiment", a.Config.Experiment),
		logging.Uint64("trials", a.Config.Trials),
		logging.Int("workers", a.Config.Workers))

	memBefore := metrics.ReadMemory()
	results := orchestration.ExecuteJobs(ctx, jobs, a.simulationOptions(), a.Metrics, progressReporter, progressOut)
	for i := range results {
		results[i].Err = apperrors.AsTimeout(results[i].Err, results[i].Name, a.Config.Timeout)
	}

	presOpts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	presenter := cli.CLIResultPresenter{}
	code := orchestration.AnalyzeResults(results, presOpts, presenter, presenter, out)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResults(out, results, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError writing output file: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(memBefore, metrics.ReadMemory(), out)
	}
	return code
}
