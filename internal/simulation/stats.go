package simulation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

// MeanVariance is the summary of a scalar estimator: the sample mean and the
// population variance of the observations.
type MeanVariance struct {
	Mean     float64
	Variance float64
}

// NewMeanVariance builds a MeanVariance, clamping a negative variance
// produced by rounding to zero.
func NewMeanVariance(mean, variance float64) MeanVariance {
	return MeanVariance{Mean: mean, Variance: math.Max(0, variance)}
}

// Interval is a closed confidence interval.
type Interval struct {
	Lower float64
	Upper float64
}

// Defined reports whether both bounds are finite numbers.
func (iv Interval) Defined() bool {
	return !math.IsNaN(iv.Lower) && !math.IsNaN(iv.Upper) &&
		!math.IsInf(iv.Lower, 0) && !math.IsInf(iv.Upper, 0)
}

// Contains reports whether x lies within the interval.
func (iv Interval) Contains(x float64) bool {
	return iv.Lower <= x && x <= iv.Upper
}

// Width returns Upper - Lower.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Scale multiplies both bounds by k, swapping them if k is negative.
func (iv Interval) Scale(k float64) Interval {
	lo, hi := iv.Lower*k, iv.Upper*k
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{Lower: lo, Upper: hi}
}

// String formats the interval as "[lo, hi]".
func (iv Interval) String() string {
	return fmt.Sprintf("[%.6f, %.6f]", iv.Lower, iv.Upper)
}

// Estimate pairs a MeanVariance with its sample count and derives standard
// errors and normal-approximation confidence intervals.
type Estimate struct {
	MeanVariance
	Samples uint64
}

// EstimateOf builds an Estimate from a run result.
func EstimateOf(r Result[MeanVariance]) Estimate {
	return Estimate{MeanVariance: r.Summary, Samples: r.Samples}
}

// StandardError returns sqrt(max(variance, 0) / samples). It is NaN when
// there is at most one sample or the variance is not finite.
func (e Estimate) StandardError() float64 {
	if e.Samples <= 1 || math.IsNaN(e.Variance) || math.IsInf(e.Variance, 0) {
		return math.NaN()
	}
	return math.Sqrt(math.Max(e.Variance, 0) / float64(e.Samples))
}

// ConfidenceInterval returns mean ± z·SE for the given two-sided level.
//
// Parameters:
//   - level: The confidence level, strictly between 0 and 1.
//
// Returns:
//   - Interval: The interval; both bounds are NaN when the standard error is
//     undefined.
//   - error: A ValidationError if level is outside (0, 1).
func (e Estimate) ConfidenceInterval(level float64) (Interval, error) {
	z, err := ZScore(level)
	if err != nil {
		return Interval{}, err
	}
	se := e.StandardError()
	if math.IsNaN(se) {
		return Interval{Lower: math.NaN(), Upper: math.NaN()}, nil
	}
	return Interval{Lower: e.Mean - z*se, Upper: e.Mean + z*se}, nil
}

// ZScore returns the two-sided standard normal critical value for level.
func ZScore(level float64) (float64, error) {
	if !(level > 0 && level < 1) {
		return 0, apperrors.ValidationError{
			Field:   "level",
			Message: fmt.Sprintf("confidence level %v must be in (0, 1)", level),
		}
	}
	return distuv.UnitNormal.Quantile(1 - (1-level)/2), nil
}
