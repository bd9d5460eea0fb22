// Package format holds the presentation helpers shared by the CLI and the
// TUI: durations, counts, percentages, ETA estimation and progress bars.
package format
