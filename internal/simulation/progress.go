//go:generate mockgen -source=progress.go -destination=mocks/mock_reporter.go -package=mocks

package simulation

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// BatchSize is the number of trials a worker runs between two updates of
// the shared completed-trial counter. It bounds contention on the counter
// while keeping progress granularity responsive.
const BatchSize = 100_000

// Reporter receives progress notifications as a percentage in [0, 100].
//
// Report is invoked on worker goroutines at batch boundaries, so it must be
// inexpensive and safe for concurrent use.
type Reporter interface {
	Report(percent float64)
}

// ReporterFunc is a function adapter that implements Reporter.
type ReporterFunc func(percent float64)

// Report calls the underlying function.
func (f ReporterFunc) Report(percent float64) { f(percent) }

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report discards the notification.
func (NullReporter) Report(float64) {}

// Tracker is the progress state of a single run: a monotonically increasing
// completed-trial count written by every worker, and a monotonically
// increasing last-reported-percent gate.
//
// A percent value is delivered to the Reporter at most once and deliveries
// are strictly increasing. Intermediate values may be skipped when workers
// race past the same boundary.
type Tracker struct {
	total     uint64
	completed atomic.Uint64
	gate      atomic.Int64
	reporter  Reporter

	mu        sync.Mutex
	delivered int64
}

// NewTracker creates the progress state for a run of total trials.
func NewTracker(total uint64, reporter Reporter) *Tracker {
	if reporter == nil {
		reporter = NullReporter{}
	}
	t := &Tracker{total: total, reporter: reporter, delivered: -1}
	t.gate.Store(-1)
	return t
}

// Advance records n completed trials at a batch boundary and reports the
// new percentage if it moves the gate forward.
func (t *Tracker) Advance(n uint64) {
	done := t.completed.Add(n)
	if t.total == 0 {
		return
	}
	percent := int64(100)
	if done < t.total {
		hi, lo := bits.Mul64(done, 100)
		q, _ := bits.Div64(hi, lo, t.total)
		percent = int64(q)
	}
	last := t.gate.Load()
	if percent > last && t.gate.CompareAndSwap(last, percent) {
		t.deliver(percent)
	}
}

// Flush records a worker's trailing remainder (fewer than BatchSize trials).
// It never reports.
func (t *Tracker) Flush(n uint64) {
	if n > 0 {
		t.completed.Add(n)
	}
}

// Finish delivers the terminal 100% notification unless a batch boundary
// already delivered it.
func (t *Tracker) Finish() {
	t.gate.Store(100)
	t.deliver(100)
}

// Completed returns the number of trials recorded so far.
func (t *Tracker) Completed() uint64 {
	return t.completed.Load()
}

// deliver serializes calls into the reporter so that two gate winners
// cannot invoke it out of order. It only runs after a gate win.
func (t *Tracker) deliver(percent int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if percent <= t.delivered {
		return
	}
	t.delivered = percent
	t.reporter.Report(float64(percent))
}
