package simulation

// Accumulator folds trial outcomes of type V into a summary of type R.
//
// Combine must be commutative and associative up to floating-point rounding,
// so that merging per-worker accumulators in any order yields the same
// Finish result within numerical tolerance. Combine must reject siblings of
// a different concrete kind with an apperrors.IncompatibleAggregatorError.
// Finish produces the immutable summary; the accumulator must not be used
// afterwards.
type Accumulator[V, R any] interface {
	Accumulate(value V) error
	Combine(other Accumulator[V, R]) error
	Finish(totalSamples uint64) (R, error)
}

// Factory creates a fresh, empty accumulator. The engine calls it once per
// worker and once more for the final aggregate; it never copies or resets
// an existing instance.
type Factory[V, R any] func() Accumulator[V, R]
