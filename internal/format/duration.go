package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// Durations under a millisecond are shown in microseconds, durations under
// a second in milliseconds, and longer ones are rounded to the millisecond.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d\u00b5s", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}

// Throughput renders trials per second ("12,345,678 trials/s").
func Throughput(trials uint64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return FormatCount(uint64(float64(trials)/d.Seconds())) + " trials/s"
}
