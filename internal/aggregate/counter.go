package aggregate

import (
	"maps"
	"slices"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/simulation"
)

// Counter tallies categorical outcomes.
type Counter[K comparable] struct {
	counts map[K]uint64
	total  uint64
}

// NewCounter returns a simulation.Factory for Counter[K].
func NewCounter[K comparable]() simulation.Factory[K, Counts[K]] {
	return func() simulation.Accumulator[K, Counts[K]] {
		return &Counter[K]{counts: make(map[K]uint64)}
	}
}

// Accumulate records one occurrence of k.
func (c *Counter[K]) Accumulate(k K) error {
	c.counts[k]++
	c.total++
	return nil
}

// Combine absorbs another Counter of the same key type.
func (c *Counter[K]) Combine(other simulation.Accumulator[K, Counts[K]]) error {
	o, ok := other.(*Counter[K])
	if !ok || o == nil {
		return apperrors.NewIncompatibleAggregatorError(c, other)
	}
	for k, n := range o.counts {
		c.counts[k] += n
	}
	c.total += o.total
	return nil
}

// Finish returns an immutable snapshot of the tallies.
func (c *Counter[K]) Finish(uint64) (Counts[K], error) {
	if c.total == 0 {
		return Counts[K]{}, ErrEmpty
	}
	return Counts[K]{counts: maps.Clone(c.counts), total: c.total}, nil
}

// Counts is the finalized summary of a Counter.
type Counts[K comparable] struct {
	counts map[K]uint64
	total  uint64
}

// Get returns the number of occurrences of k.
func (c Counts[K]) Get(k K) uint64 {
	return c.counts[k]
}

// Total returns the number of recorded outcomes.
func (c Counts[K]) Total() uint64 {
	return c.total
}

// Fraction returns Get(k)/Total(), or 0 for an empty snapshot.
func (c Counts[K]) Fraction(k K) float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.counts[k]) / float64(c.total)
}

// Keys returns the observed keys ordered by cmp.
func (c Counts[K]) Keys(cmp func(a, b K) int) []K {
	return slices.SortedFunc(maps.Keys(c.counts), cmp)
}
