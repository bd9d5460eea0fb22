package aggregate

import (
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/simulation"
)

// MeanVarianceAcc keeps the count, sum and sum of squares of scalar
// outcomes. Its summary carries the population variance.
type MeanVarianceAcc struct {
	count uint64
	sum   float64
	sumSq float64
}

// NewMeanVariance is a simulation.Factory for MeanVarianceAcc.
func NewMeanVariance() simulation.Accumulator[float64, simulation.MeanVariance] {
	return &MeanVarianceAcc{}
}

// Accumulate records one outcome.
func (m *MeanVarianceAcc) Accumulate(x float64) error {
	m.count++
	m.sum += x
	m.sumSq += x * x
	return nil
}

// Combine absorbs another MeanVarianceAcc.
func (m *MeanVarianceAcc) Combine(other simulation.Accumulator[float64, simulation.MeanVariance]) error {
	o, ok := other.(*MeanVarianceAcc)
	if !ok || o == nil {
		return apperrors.NewIncompatibleAggregatorError(m, other)
	}
	m.count += o.count
	m.sum += o.sum
	m.sumSq += o.sumSq
	return nil
}

// Finish returns sum/n and sumSq/n - mean², clamped to be non-negative.
func (m *MeanVarianceAcc) Finish(uint64) (simulation.MeanVariance, error) {
	if m.count == 0 {
		return simulation.MeanVariance{}, ErrEmpty
	}
	n := float64(m.count)
	mean := m.sum / n
	return simulation.NewMeanVariance(mean, m.sumSq/n-mean*mean), nil
}
