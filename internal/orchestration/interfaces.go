package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/mcsim/internal/progress"
)

// JobResult is the outcome of one experiment job.
type JobResult struct {
	// Name is the registry name of the experiment (e.g. "pi").
	Name string
	// Description is the human-readable label of the experiment.
	Description string
	// Summary holds the statistics of a successful run.
	Summary Summary
	// Duration is the wall-clock time of the job.
	Duration time.Duration
	// Err is the failure of the job, or nil.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressReporter displays the progress of running jobs. This interface
// keeps the orchestration layer independent of terminal rendering.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done. It runs on its own goroutine.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from jobs.
	//   - numJobs: The number of concurrent jobs being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer) {
	f(wg, progressChan, numJobs, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders job results.
type ResultPresenter interface {
	// PresentSummaryTable displays one row per job of a multi-job run.
	PresentSummaryTable(results []JobResult, out io.Writer)

	// PresentResult displays the full report of one successful job.
	PresentResult(result JobResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles job errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// RunObserver is told about every finished job. It is how the metrics
// layer learns per-experiment totals.
type RunObserver interface {
	RunFinished(experiment string, trials uint64, elapsed time.Duration, err error)
}
