package orchestration

import (
	"time"

	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/progress"
)

// ProgressAggregator combines the progress of concurrent jobs into one
// average with an ETA. Both the CLI and the TUI consume the progress
// channel through it.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	numJobs int
}

// NewProgressAggregator creates an aggregator for numJobs jobs. Returns nil
// if numJobs <= 0.
func NewProgressAggregator(numJobs int) *ProgressAggregator {
	if numJobs <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:   format.NewProgressWithETA(numJobs),
		numJobs: numJobs,
	}
}

// AggregatedProgress is the aggregator state after one update.
type AggregatedProgress struct {
	// JobIndex is the index of the job that sent the update.
	JobIndex int
	// Value is the job's own progress (0.0 to 1.0).
	Value float64
	// AverageProgress is the average across all jobs.
	AverageProgress float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// Update applies one progress update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.JobIndex, update.Value)
	return AggregatedProgress{
		JobIndex:        update.JobIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Elapsed returns the time since the aggregator was created.
func (a *ProgressAggregator) Elapsed() time.Duration {
	return a.state.Elapsed()
}

// NumJobs returns the number of jobs being tracked.
func (a *ProgressAggregator) NumJobs() int {
	return a.numJobs
}

// IsMultiJob reports whether more than one job is tracked.
func (a *ProgressAggregator) IsMultiJob() bool {
	return a.numJobs > 1
}

// DrainChannel reads all updates from the channel until it is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
