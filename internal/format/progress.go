package format

import "strings"

// ProgressState tracks the progress of several concurrent jobs, each as a
// fraction in [0, 1].
type ProgressState struct {
	progresses []float64
	numJobs    int
}

// NewProgressState creates a state for numJobs jobs.
func NewProgressState(numJobs int) *ProgressState {
	if numJobs < 0 {
		numJobs = 0
	}
	return &ProgressState{progresses: make([]float64, numJobs), numJobs: numJobs}
}

// Update records the progress of one job. Out-of-range indices are ignored
// and values are clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= ps.numJobs {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress across all jobs.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numJobs == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numJobs)
}

// ProgressBar renders a bar of the given length using full and light blocks.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
