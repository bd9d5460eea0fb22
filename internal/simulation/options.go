package simulation

import (
	"runtime"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/logging"
)

// Options configures a single run.
type Options struct {
	// Trials is the total number of trials; must be positive.
	Trials uint64
	// Workers is the size of the worker pool. Zero means runtime.NumCPU().
	Workers int
	// Seed is the base seed from which every worker stream is derived.
	Seed int64
	// Reporter receives progress notifications. Nil means NullReporter.
	Reporter Reporter
	// Observer is notified of worker lifecycle events. Optional.
	Observer WorkerObserver
	// Logger receives run-level log entries. Nil discards them.
	Logger logging.Logger
}

// normalize validates the options and fills in defaults.
func (o Options) normalize() (Options, error) {
	if o.Trials == 0 {
		return o, apperrors.ValidationError{Field: "trials", Message: "must be positive"}
	}
	if o.Workers < 0 {
		return o, apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Reporter == nil {
		o.Reporter = NullReporter{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}
	return o, nil
}
