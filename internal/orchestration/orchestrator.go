package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/mcsim/internal/logging"
	"github.com/agbru/mcsim/internal/progress"
	"github.com/agbru/mcsim/internal/simulation"
)

// ProgressBufferPerJob is the progress channel capacity reserved for each
// job. The engine delivers at most 101 distinct percentages per run, so job
// reporters never block on a slow display.
const ProgressBufferPerJob = 101

// ExecuteJobs runs jobs concurrently, each on its own engine invocation with
// its own progress state, and collects their results in job order.
//
// A failing job does not stop the others; its error is recorded in its
// JobResult. Cancellation of ctx stops every job at its next batch boundary.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - jobs: The jobs to execute.
//   - base: Engine options shared by every job; Reporter is replaced per job.
//   - runs: Optional observer of finished jobs.
//   - progressReporter: The progress display (NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []JobResult: A slice containing the result of each job.
func ExecuteJobs(ctx context.Context, jobs []Job, base simulation.Options, runs RunObserver, progressReporter ProgressReporter, out io.Writer) []JobResult {
	results := make([]JobResult, len(jobs))
	progressChan := make(chan progress.ProgressUpdate, len(jobs)*ProgressBufferPerJob)
	logger := base.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(jobs), out)

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			opts := base
			opts.Reporter = simulation.ReporterFunc(func(percent float64) {
				progressChan <- progress.ProgressUpdate{JobIndex: i, Value: percent / 100}
			})
			opts.Logger = logger

			start := time.Now()
			summary, err := job.Run(ctx, opts)
			results[i] = JobResult{
				Name:        job.Name,
				Description: job.Description,
				Summary:     summary,
				Duration:    time.Since(start),
				Err:         err,
			}
			if runs != nil {
				runs.RunFinished(job.Name, summary.Samples, results[i].Duration, err)
			}
			if err != nil {
				logger.Error("experiment failed", err, logging.String("experiment", job.Name))
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults presents the results of a run and returns its exit code.
//
// Multi-job runs get a summary table first. Every successful job is then
// presented in full. The exit code is that of the first failure, or success
// when every job completed.
//
// Parameters:
//   - results: The results of ExecuteJobs.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - handler: Maps the first failure to an exit code.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []JobResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	if len(results) > 1 && !opts.Quiet {
		presenter.PresentSummaryTable(results, out)
	}

	var firstErr *JobResult
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = &results[i]
			}
			continue
		}
		presenter.PresentResult(results[i], opts, out)
	}
	if firstErr == nil {
		return 0
	}
	if len(results) > 1 && !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Failure. %s did not complete.\n", firstErr.Name)
	}
	return handler.HandleError(firstErr.Err, firstErr.Duration, out)
}
