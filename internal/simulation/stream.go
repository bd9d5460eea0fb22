package simulation

import "math/rand/v2"

const golden = 0x9E3779B97F4A7C15

// NewStream returns the random stream for one worker of a run.
//
// The same (seedBase, worker) pair always yields the same sequence, and
// distinct workers under one seed base start from distinct PCG states.
// Changing the worker count changes the partition, so results are only
// bit-identical across runs that use the same worker count.
func NewStream(seedBase int64, worker int) *rand.Rand {
	hi, lo := StreamSeeds(seedBase, worker)
	return rand.New(rand.NewPCG(hi, lo))
}

// StreamSeeds derives the two PCG seed words for a worker. Both inputs go
// through SplitMix64 so that adjacent seeds and adjacent workers do not
// start on nearby generator states.
func StreamSeeds(seedBase int64, worker int) (hi, lo uint64) {
	hi = splitmix64(uint64(seedBase))
	lo = splitmix64(hi ^ (uint64(worker) + golden))
	return hi, lo
}

// splitmix64 is a bijective 64-bit finalizer.
func splitmix64(x uint64) uint64 {
	x += golden
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
