package simulation

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

func TestPartition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		total   uint64
		workers int
		want    []uint64
	}{
		{"Even split", 12, 4, []uint64{3, 3, 3, 3}},
		{"Remainder goes first", 10, 4, []uint64{3, 3, 2, 2}},
		{"More workers than trials", 3, 5, []uint64{1, 1, 1, 0, 0}},
		{"Single worker", 7, 1, []uint64{7}},
		{"Zero trials", 0, 3, []uint64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Partition(tt.total, tt.workers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPartitionInvalidWorkers(t *testing.T) {
	t.Parallel()
	for _, w := range []int{0, -1} {
		_, err := Partition(10, w)
		var ve apperrors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Partition(10, %d) error = %v, want ValidationError", w, err)
		}
	}
}

// TestPartition_PropertyBased checks that chunks always sum to the total and
// differ by at most one.
func TestPartition_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("chunks sum to total and are balanced", prop.ForAll(
		func(total uint64, workers int) bool {
			chunks, err := Partition(total, workers)
			if err != nil || len(chunks) != workers {
				return false
			}
			var sum, lo, hi uint64
			lo = ^uint64(0)
			for _, c := range chunks {
				sum += c
				lo = min(lo, c)
				hi = max(hi, c)
			}
			return sum == total && hi-lo <= 1
		},
		gen.UInt64Range(0, 1<<40),
		gen.IntRange(1, 512),
	))

	properties.TestingRun(t)
}
