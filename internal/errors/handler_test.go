package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", ExecutionError{Worker: 1, Cause: context.DeadlineExceeded}, ExitErrorTimeout},
		{"timeout type", TimeoutError{Operation: "pi", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", WrapError(context.Canceled, "run"), ExitErrorCanceled},
		{"config", NewConfigError("bias must be in [0, 1]"), ExitErrorConfig},
		{"validation", ValidationError{Field: "workers", Message: "must be at least 1"}, ExitErrorConfig},
		{"execution", ExecutionError{Worker: 2, Cause: errors.New("boom")}, ExitErrorExecution},
		{"generic", errors.New("disk full"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleExecutionError(t *testing.T) {
	t.Parallel()

	t.Run("nil error prints nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if code := HandleExecutionError(nil, time.Second, &buf, NoColor{}); code != ExitSuccess {
			t.Errorf("expected ExitSuccess, got %d", code)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("failure includes cause and duration", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := ExecutionError{Worker: 0, Cause: errors.New("bad draw")}
		code := HandleExecutionError(err, 1500*time.Millisecond, &buf, NoColor{})
		if code != ExitErrorExecution {
			t.Errorf("expected ExitErrorExecution, got %d", code)
		}
		out := buf.String()
		for _, want := range []string{"Failure", "bad draw", "1.5s"} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got %q", want, out)
			}
		}
	})

	t.Run("timeout message", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		code := HandleExecutionError(context.DeadlineExceeded, 0, &buf, NoColor{})
		if code != ExitErrorTimeout {
			t.Errorf("expected ExitErrorTimeout, got %d", code)
		}
		if !strings.Contains(buf.String(), "Timeout") {
			t.Errorf("expected timeout message, got %q", buf.String())
		}
	})
}
