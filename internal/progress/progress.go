// Package progress defines the progress message exchanged between the job
// orchestrator and the presentation layers.
package progress

// ProgressUpdate reports the progress of one job of a multi-job run.
type ProgressUpdate struct {
	// JobIndex is the position of the job in the run.
	JobIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives progress values for a single job.
type ProgressCallback func(value float64)
