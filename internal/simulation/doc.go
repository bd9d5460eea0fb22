// Package simulation is the parallel Monte Carlo execution engine.
//
// A run partitions a requested trial count across a fixed pool of workers.
// Each worker draws from its own reproducible random stream and folds the
// outcomes into its own accumulator; the accumulators are combined into one
// immutable Result at the end. Progress goes through an atomic compare-and-swap
// gate on the completed-trial counter. Only a gate winner takes the mutex that
// orders reporter calls, so the lock is taken at most 101 times per run and
// never in the trial loop. Trial producers and accumulators are supplied by
// the caller; see the experiment and aggregate packages for concrete
// implementations.
//
// The engine keeps all shared state (the completed-trial counter and the
// last-reported-percent gate) inside a Tracker created fresh for every
// Execute call, so concurrent simulations never interfere with each other.
package simulation
