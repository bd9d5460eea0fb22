package simulation

// Assemble combines per-worker partial accumulators into a fresh aggregate
// from newAcc and finalizes it with total.
//
// Partials are folded in slice order, which Execute keeps equal to worker
// index order. The fold is deterministic for a given partition regardless of
// worker completion order.
func Assemble[V, R any](newAcc Factory[V, R], partials []Accumulator[V, R], total uint64) (Result[R], error) {
	var zero Result[R]
	agg := newAcc()
	if agg == nil {
		return zero, ErrNilAccumulator
	}
	for _, p := range partials {
		if err := agg.Combine(p); err != nil {
			return zero, err
		}
	}
	summary, err := agg.Finish(total)
	if err != nil {
		return zero, err
	}
	return Result[R]{Summary: summary, Samples: total}, nil
}
