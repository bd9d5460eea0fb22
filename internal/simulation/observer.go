//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

package simulation

// WorkerObserver is notified when a worker starts and stops its trial loop.
// Callbacks run on the worker goroutine and must be safe for concurrent use.
type WorkerObserver interface {
	WorkerStarted(worker int)
	WorkerFinished(worker int, trials uint64, err error)
}

type nopObserver struct{}

func (nopObserver) WorkerStarted(int)                 {}
func (nopObserver) WorkerFinished(int, uint64, error) {}
