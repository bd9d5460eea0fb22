// Package calibration measures engine throughput per worker count and
// caches the best count in a JSON profile.
package calibration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/mcsim/internal/aggregate"
	"github.com/agbru/mcsim/internal/cli"
	"github.com/agbru/mcsim/internal/config"
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/experiment"
	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/logging"
	"github.com/agbru/mcsim/internal/simulation"
	"github.com/agbru/mcsim/internal/ui"
)

// DefaultCalibrationTrials is the trial count of each benchmark run.
const DefaultCalibrationTrials = 2_000_000

type calibrationResult struct {
	Workers    int
	Duration   time.Duration
	Throughput float64
	Err        error
}

// reporterFactory returns the progress reporter for one benchmark run.
type reporterFactory func(workers int) (simulation.Reporter, func())

// measure runs the π experiment once per worker count.
func measure(ctx context.Context, counts []int, trials uint64, seed int64, logger logging.Logger, newReporter reporterFactory) []calibrationResult {
	results := make([]calibrationResult, 0, len(counts))
	for _, workers := range counts {
		if ctx.Err() != nil {
			results = append(results, calibrationResult{Workers: workers, Err: ctx.Err()})
			continue
		}
		reporter, done := newReporter(workers)
		start := time.Now()
		_, err := simulation.Execute[float64](ctx, experiment.PiEstimation{}, aggregate.NewMeanVariance, simulation.Options{
			Trials:   trials,
			Workers:  workers,
			Seed:     seed,
			Reporter: reporter,
			Logger:   logger,
		})
		elapsed := time.Since(start)
		done()

		res := calibrationResult{Workers: workers, Duration: elapsed, Err: err}
		if err == nil && elapsed > 0 {
			res.Throughput = float64(trials) / elapsed.Seconds()
		}
		logger.Debug("calibration run", logging.Int("workers", workers), logging.Float64("throughput", res.Throughput))
		results = append(results, res)
	}
	return results
}

// best picks the highest throughput, preferring fewer workers on ties.
func best(results []calibrationResult) (calibrationResult, bool) {
	var top calibrationResult
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Throughput > top.Throughput {
			top, found = r, true
		}
	}
	return top, found
}

// RunCalibration benchmarks the worker counts of GenerateWorkerCounts,
// prints the results table and saves the best count to the profile.
//
// Parameters:
//   - ctx: Cancels the calibration between and during runs.
//   - cfg: Supplies the seed, the profile path and the quiet flag; a trial
//     count below DefaultCalibrationTrials shortens every run.
//   - out: The writer for the table.
//   - logger: Receives per-run debug records.
//
// Returns:
//   - int: The exit code.
func RunCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer, logger logging.Logger) int {
	trials := min(cfg.Trials, DefaultCalibrationTrials)
	if trials == 0 {
		trials = DefaultCalibrationTrials
	}
	counts := GenerateWorkerCounts(runtime.NumCPU())

	fmt.Fprintf(out, "--- Calibration ---\n")
	fmt.Fprintf(out, "Measuring %s%s%s trials of the π experiment for %d worker counts.\n",
		ui.ColorCyan(), format.FormatCount(trials), ui.ColorReset(), len(counts))

	newReporter := func(workers int) (simulation.Reporter, func()) {
		if cfg.Quiet {
			return simulation.NullReporter{}, func() {}
		}
		bar := cli.NewBarReporter(out, fmt.Sprintf("workers=%-3d", workers))
		bar.Start()
		return bar, bar.Stop
	}

	start := time.Now()
	results := measure(ctx, counts, trials, cfg.Seed, logger, newReporter)
	top, ok := best(results)
	printCalibrationResults(out, results, top.Workers)

	if !ok {
		err := results[len(results)-1].Err
		return apperrors.HandleExecutionError(err, time.Since(start), out, cli.CLIColorProvider{})
	}
	if err := ctx.Err(); err != nil {
		return apperrors.HandleExecutionError(err, time.Since(start), out, cli.CLIColorProvider{})
	}

	profile := NewProfile()
	profile.OptimalWorkers = top.Workers
	profile.CalibrationTrials = trials
	profile.Throughput = top.Throughput
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "%sWarning: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	printCalibrationOutput(out, profile, path)
	return apperrors.ExitSuccess
}
