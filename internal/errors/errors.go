package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // Indicates the operation timed out.
	ExitErrorExecution = 3   // Indicates a worker failed during a simulation run.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents invalid construction parameters, either from the
// user (flags, environment) or for a trial producer or accumulator (e.g. a
// coin bias outside [0, 1]). It is always raised at construction time, never
// in the middle of a run.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure on an engine call,
// such as a worker count below one or a confidence level outside (0, 1).
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// IncompatibleAggregatorError is returned by an accumulator's Combine when the
// sibling is not of the same concrete kind. It is always fatal to the run.
type IncompatibleAggregatorError struct {
	// Want is the concrete kind of the receiving accumulator.
	Want string
	// Got is the concrete kind of the accumulator passed to Combine.
	Got string
}

// Error returns a formatted message naming both accumulator kinds.
func (e IncompatibleAggregatorError) Error() string {
	return fmt.Sprintf("incompatible aggregator: cannot combine %s into %s", e.Got, e.Want)
}

// NewIncompatibleAggregatorError builds an IncompatibleAggregatorError from
// the receiving accumulator and the offending sibling.
func NewIncompatibleAggregatorError(want, got any) error {
	return IncompatibleAggregatorError{Want: fmt.Sprintf("%T", want), Got: fmt.Sprintf("%T", got)}
}

// ExecutionError reports that a worker's trial loop failed. The whole run is
// aborted and the partial per-worker accumulators are discarded.
type ExecutionError struct {
	// Worker is the index of the first worker observed failing.
	Worker int
	// Cause is the underlying error raised by the producer or accumulator.
	Cause error
}

// Error returns a formatted message naming the failing worker.
func (e ExecutionError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Worker, e.Cause)
}

func (e ExecutionError) Unwrap() error { return e.Cause }

// TimeoutError reports that a run hit its deadline. It unwraps to
// context.DeadlineExceeded.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Limit)
}

func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// AsTimeout replaces a deadline error with a TimeoutError naming the
// operation and its limit. Other errors are returned unchanged.
func AsTimeout(err error, operation string, limit time.Duration) error {
	var toErr TimeoutError
	if !errors.Is(err, context.DeadlineExceeded) || errors.As(err, &toErr) {
		return err
	}
	return TimeoutError{Operation: operation, Limit: limit}
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
