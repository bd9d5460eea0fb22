package simulation

import "time"

// Result is the outcome of a completed run.
type Result[R any] struct {
	// Summary is the finalized aggregate.
	Summary R
	// Samples is the number of trials that contributed to Summary.
	Samples uint64
	// RunID identifies the run in logs, traces, and metrics.
	RunID string
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}
