package metrics

import (
	"runtime"
	"testing"
	"time"
)

var sink []byte

func TestReadMemory(t *testing.T) {
	snap := ReadMemory()
	if snap.HeapAlloc == 0 || snap.Sys == 0 {
		t.Errorf("empty snapshot: %+v", snap)
	}
	if snap.Goroutines < 1 {
		t.Errorf("Goroutines = %d, want at least 1", snap.Goroutines)
	}
}

func TestMemorySnapshotSince(t *testing.T) {
	before := ReadMemory()
	sink = make([]byte, 4<<20)
	runtime.GC()
	after := ReadMemory()

	d := after.Since(before)
	if d.Allocated < 4<<20 {
		t.Errorf("Allocated = %d, want at least 4 MiB", d.Allocated)
	}
	if d.GCCycles < 1 {
		t.Errorf("GCCycles = %d, want at least 1 after runtime.GC", d.GCCycles)
	}
	sink = nil
}

func TestMemorySnapshotSince_Reversed(t *testing.T) {
	newer := MemorySnapshot{HeapAlloc: 10, TotalAlloc: 100, NumGC: 5, GCPause: time.Second}
	older := MemorySnapshot{HeapAlloc: 20, TotalAlloc: 50, NumGC: 2, GCPause: time.Millisecond}

	d := older.Since(newer)
	if d.Allocated != 0 || d.GCCycles != 0 || d.GCPause != 0 {
		t.Errorf("reversed delta should be zero, got %+v", d)
	}
	if d.PeakHeap != 20 {
		t.Errorf("PeakHeap = %d, want 20", d.PeakHeap)
	}
}
