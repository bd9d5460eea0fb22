package simulation

import apperrors "github.com/agbru/mcsim/internal/errors"

// Partition splits total trials into one chunk per worker.
//
// The first total%workers chunks receive one extra trial, so chunk sizes
// differ by at most one and always sum to total. When total < workers some
// chunks are zero; the engine still runs those workers so their empty
// accumulators take part in the final combine.
//
// Parameters:
//   - total: The number of trials to distribute.
//   - workers: The number of chunks to produce; must be at least 1.
//
// Returns:
//   - []uint64: The chunk sizes, indexed by worker.
//   - error: A ValidationError if workers < 1.
func Partition(total uint64, workers int) ([]uint64, error) {
	if workers < 1 {
		return nil, apperrors.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	n := uint64(workers)
	base, remainder := total/n, total%n
	chunks := make([]uint64, workers)
	for i := range chunks {
		chunks[i] = base
		if uint64(i) < remainder {
			chunks[i]++
		}
	}
	return chunks, nil
}
