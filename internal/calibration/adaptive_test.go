package calibration

import (
	"slices"
	"testing"
)

func TestGenerateWorkerCounts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		numCPU int
		want   []int
	}{
		{numCPU: 0, want: []int{1, 2}},
		{numCPU: 1, want: []int{1, 2}},
		{numCPU: 2, want: []int{1, 2, 4}},
		{numCPU: 4, want: []int{1, 2, 4, 8}},
		{numCPU: 6, want: []int{1, 2, 4, 6, 12}},
		{numCPU: 16, want: []int{1, 2, 4, 8, 16, 32}},
	}
	for _, tt := range tests {
		got := GenerateWorkerCounts(tt.numCPU)
		if !slices.Equal(got, tt.want) {
			t.Errorf("GenerateWorkerCounts(%d) = %v, want %v", tt.numCPU, got, tt.want)
		}
		if !slices.IsSorted(got) {
			t.Errorf("GenerateWorkerCounts(%d) = %v is not sorted", tt.numCPU, got)
		}
	}
}

func BenchmarkGenerateWorkerCounts(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = GenerateWorkerCounts(64)
	}
}
