package calibration

// GenerateWorkerCounts returns the worker counts to benchmark on a host
// with numCPU logical CPUs: powers of two below numCPU, then numCPU
// itself, then 2*numCPU to measure oversubscription.
func GenerateWorkerCounts(numCPU int) []int {
	if numCPU <= 1 {
		return []int{1, 2}
	}
	var counts []int
	for w := 1; w < numCPU; w *= 2 {
		counts = append(counts, w)
	}
	return append(counts, numCPU, 2*numCPU)
}
