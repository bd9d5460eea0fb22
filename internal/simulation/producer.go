package simulation

import "math/rand/v2"

// Producer runs one randomized trial and returns its outcome.
//
// Implementations must be pure functions of the random source: they may be
// invoked concurrently from many workers, each with its own stream, and must
// not retain or share mutable state across calls.
type Producer[V any] interface {
	Produce(rng *rand.Rand) (V, error)
}

// ProducerFunc is a function adapter that implements Producer.
type ProducerFunc[V any] func(rng *rand.Rand) (V, error)

// Produce calls the underlying function.
func (f ProducerFunc[V]) Produce(rng *rand.Rand) (V, error) {
	return f(rng)
}
