package aggregate

import (
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/simulation"
)

// BooleanMean estimates the probability of a Bernoulli outcome. Its summary
// has variance p(1-p).
type BooleanMean struct {
	hits  uint64
	count uint64
}

// NewBooleanMean is a simulation.Factory for BooleanMean.
func NewBooleanMean() simulation.Accumulator[bool, simulation.MeanVariance] {
	return &BooleanMean{}
}

// Accumulate records one outcome.
func (b *BooleanMean) Accumulate(hit bool) error {
	if hit {
		b.hits++
	}
	b.count++
	return nil
}

// Combine absorbs another BooleanMean.
func (b *BooleanMean) Combine(other simulation.Accumulator[bool, simulation.MeanVariance]) error {
	o, ok := other.(*BooleanMean)
	if !ok || o == nil {
		return apperrors.NewIncompatibleAggregatorError(b, other)
	}
	b.hits += o.hits
	b.count += o.count
	return nil
}

// Finish returns the hit fraction and its Bernoulli variance.
func (b *BooleanMean) Finish(uint64) (simulation.MeanVariance, error) {
	if b.count == 0 {
		return simulation.MeanVariance{}, ErrEmpty
	}
	p := float64(b.hits) / float64(b.count)
	return simulation.NewMeanVariance(p, p*(1-p)), nil
}
