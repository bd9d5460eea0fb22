// Package sysmon samples host CPU and memory usage for the dashboard.
package sysmon

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of host and process resource usage.
type Stats struct {
	CPUPercent float64 // host-wide, 0.0 .. 100.0
	MemPercent float64 // host-wide, 0.0 .. 100.0
	Goroutines int
	At         time.Time
}

// Sample collects one snapshot. CPU usage is the delta since the previous
// call (interval 0). Fields whose probe fails are left at zero.
func Sample(ctx context.Context) Stats {
	s := Stats{Goroutines: runtime.NumGoroutine(), At: time.Now()}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}

// Watch samples every interval and sends the result on the returned
// channel until ctx is done. Slow receivers miss samples rather than
// delaying the sampler.
func Watch(ctx context.Context, interval time.Duration) <-chan Stats {
	ch := make(chan Stats, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ch <- Sample(ctx):
				default:
				}
			}
		}
	}()
	return ch
}
