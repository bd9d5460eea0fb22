package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is the runtime memory state at one instant.
type MemorySnapshot struct {
	HeapAlloc  uint64
	TotalAlloc uint64
	Sys        uint64
	NumGC      uint32
	GCPause    time.Duration
	Goroutines int
}

// ReadMemory reads the runtime memory statistics. It stops the world
// briefly, so callers sample it around runs rather than inside workers.
func ReadMemory() MemorySnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemorySnapshot{
		HeapAlloc:  ms.HeapAlloc,
		TotalAlloc: ms.TotalAlloc,
		Sys:        ms.Sys,
		NumGC:      ms.NumGC,
		GCPause:    time.Duration(ms.PauseTotalNs),
		Goroutines: runtime.NumGoroutine(),
	}
}

// MemoryDelta is the allocation and GC work between two snapshots.
type MemoryDelta struct {
	Allocated uint64
	GCCycles  uint32
	GCPause   time.Duration
	// PeakHeap is the larger heap of the two snapshots.
	PeakHeap uint64
}

// Since returns the work done between before and s. Counters are
// cumulative, so a snapshot older than before yields zero deltas.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	d := MemoryDelta{PeakHeap: max(s.HeapAlloc, before.HeapAlloc)}
	if s.TotalAlloc > before.TotalAlloc {
		d.Allocated = s.TotalAlloc - before.TotalAlloc
	}
	if s.NumGC > before.NumGC {
		d.GCCycles = s.NumGC - before.NumGC
	}
	if s.GCPause > before.GCPause {
		d.GCPause = s.GCPause - before.GCPause
	}
	return d
}
