package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing an error.
// The cli package provides the themed implementation; NoColor is used in tests.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// NoColor is a ColorProvider that emits no escape sequences.
type NoColor struct{}

func (NoColor) Red() string    { return "" }
func (NoColor) Yellow() string { return "" }
func (NoColor) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing it.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		cfgErr  ConfigError
		valErr  ValidationError
		execErr ExecutionError
		toErr   TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &toErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.As(err, &execErr):
		return ExitErrorExecution
	}
	return ExitErrorGeneric
}

// HandleExecutionError prints a user-facing description of err and returns
// the matching exit code. A nil error prints nothing and returns ExitSuccess.
//
// Parameters:
//   - err: The error returned by a run.
//   - duration: How long the run took before failing (0 if unknown).
//   - out: The writer for the message.
//   - colors: The color provider used for highlighting.
//
// Returns:
//   - int: The exit code for the error class.
func HandleExecutionError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
		return code
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Timeout.%s The run exceeded its time limit", colors.Yellow(), colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled.%s The run was interrupted", colors.Yellow(), colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s %v", colors.Red(), colors.Reset(), err)
	}
	if duration > 0 {
		fmt.Fprintf(out, " (after %s)", duration.Round(time.Millisecond))
	}
	fmt.Fprintln(out)
	return code
}
