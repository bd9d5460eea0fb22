package simulation

import "context"

// Future is the handle of a run started with ExecuteAsync.
type Future[R any] struct {
	done chan struct{}
	res  Result[R]
	err  error
}

// ExecuteAsync starts Execute on a new goroutine and returns immediately.
// Canceling ctx cancels the run; the Future still completes, with the
// cancellation error.
func ExecuteAsync[V, R any](ctx context.Context, producer Producer[V], newAcc Factory[V, R], opts Options) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.res, f.err = Execute(ctx, producer, newAcc, opts)
	}()
	return f
}

// Done returns a channel that is closed once the run has completed.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the run completes or ctx is done. Abandoning the wait
// through ctx does not cancel the run itself.
func (f *Future[R]) Wait(ctx context.Context) (Result[R], error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return Result[R]{}, ctx.Err()
	}
}
