package orchestration

import (
	"time"

	"github.com/agbru/mcsim/internal/simulation"
)

// ValueKind selects how a derived value is rendered.
type ValueKind int

const (
	// KindNumber is a plain real number.
	KindNumber ValueKind = iota
	// KindPercent is a fraction rendered as a percentage.
	KindPercent
	// KindCount is a non-negative integer count.
	KindCount
)

// Derived is an experiment-specific quantity computed from the summary.
type Derived struct {
	Label    string
	Value    float64
	Kind     ValueKind
	Interval *simulation.Interval
}

// Summary is the presentation-ready outcome of a run.
type Summary struct {
	Samples uint64
	RunID   string
	Elapsed time.Duration

	// Estimate is set for experiments with a scalar outcome.
	Estimate *simulation.Estimate
	// Level is the confidence level of Interval.
	Level float64
	// Interval is the confidence interval of the mean.
	Interval simulation.Interval

	Derived []Derived
	// Verdict is an optional one-line conclusion.
	Verdict string
}

// Headline returns the primary value of the summary: the first derived
// value, or the mean when there is none.
func (s Summary) Headline() (string, float64, ValueKind) {
	if len(s.Derived) > 0 {
		d := s.Derived[0]
		return d.Label, d.Value, d.Kind
	}
	if s.Estimate != nil {
		return "Mean", s.Estimate.Mean, KindNumber
	}
	return "Samples", float64(s.Samples), KindCount
}

// scalarSummary builds the common part of a summary for a mean-variance
// result.
func scalarSummary(res simulation.Result[simulation.MeanVariance], level float64) (Summary, error) {
	est := simulation.EstimateOf(res)
	ci, err := est.ConfidenceInterval(level)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Samples:  res.Samples,
		RunID:    res.RunID,
		Elapsed:  res.Elapsed,
		Estimate: &est,
		Level:    level,
		Interval: ci,
	}, nil
}
