// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayReport], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/simulation"
	"github.com/agbru/mcsim/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Quiet mode prints one line per experiment.
	Quiet bool
	// Verbose adds the raw moments and run metadata.
	Verbose bool
}

// FormatValue renders a value according to its kind.
func FormatValue(v float64, kind orchestration.ValueKind) string {
	switch kind {
	case orchestration.KindPercent:
		return format.FormatPercent(v)
	case orchestration.KindCount:
		return format.FormatCount(uint64(v))
	default:
		return format.FormatFloat(v)
	}
}

// FormatInterval renders an interval with the same kind as its value.
func FormatInterval(iv simulation.Interval, kind orchestration.ValueKind) string {
	if !iv.Defined() {
		return "undefined"
	}
	if kind == orchestration.KindPercent {
		return fmt.Sprintf("[%s, %s]", format.FormatPercent(iv.Lower), format.FormatPercent(iv.Upper))
	}
	return iv.String()
}

// writeReport writes the full report of one job using the given theme.
func writeReport(out io.Writer, res orchestration.JobResult, verbose bool, theme ui.Theme) {
	s := res.Summary
	row := func(label, value string) {
		fmt.Fprintf(out, "  %-22s %s\n", label+":", value)
	}

	fmt.Fprintf(out, "\n%s--- %s ---%s\n", theme.Bold, res.Description, theme.Reset)
	row("Samples", format.FormatCount(s.Samples))
	if s.Estimate != nil {
		row("Mean", format.FormatFloat(s.Estimate.Mean))
		if verbose {
			row("Variance", format.FormatFloat(s.Estimate.Variance))
		}
		row("Standard error", format.FormatFloat(s.Estimate.StandardError()))
		row(fmt.Sprintf("%g%% CI", s.Level*100), FormatInterval(s.Interval, orchestration.KindNumber))
	}
	for _, d := range s.Derived {
		value := theme.Primary + FormatValue(d.Value, d.Kind) + theme.Reset
		if d.Interval != nil {
			value += "  " + theme.Muted + FormatInterval(*d.Interval, d.Kind) + theme.Reset
		}
		row(d.Label, value)
	}
	if s.Verdict != "" {
		color := theme.Success
		if strings.Contains(s.Verdict, "artificial") {
			color = theme.Warning
		}
		row("Verdict", color+s.Verdict+theme.Reset)
	}
	row("Duration", fmt.Sprintf("%s (%s)", format.FormatExecutionDuration(res.Duration), format.Throughput(s.Samples, res.Duration)))
	if verbose {
		row("Run ID", s.RunID)
	}
}

// DisplayReport writes the colorized report of one job.
func DisplayReport(out io.Writer, res orchestration.JobResult, verbose bool) {
	writeReport(out, res, verbose, ui.CurrentTheme())
}

// FormatQuietResult formats a result as a single line suitable for
// scripting: the experiment name, its headline value and, when known, the
// headline interval.
func FormatQuietResult(res orchestration.JobResult) string {
	_, v, kind := res.Summary.Headline()
	line := fmt.Sprintf("%s %s", res.Name, FormatValue(v, kind))
	if len(res.Summary.Derived) > 0 && res.Summary.Derived[0].Interval != nil {
		line += " " + FormatInterval(*res.Summary.Derived[0].Interval, kind)
	}
	return line
}

// DisplayQuietResult outputs a result in quiet mode.
func DisplayQuietResult(out io.Writer, res orchestration.JobResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// WriteResultsToFile writes the plain-text reports of the successful jobs
// to config.OutputFile, creating parent directories as needed.
//
// Parameters:
//   - results: The job results.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []orchestration.JobResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Monte Carlo Simulation Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(file, "\n# %s failed: %v\n", res.Name, res.Err)
			continue
		}
		writeReport(file, res, true, ui.PlainTheme)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResults presents results according to config and writes the
// report file when one is configured.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResults(out io.Writer, results []orchestration.JobResult, config OutputConfig) error {
	if config.Quiet {
		for _, res := range results {
			if res.Err == nil {
				DisplayQuietResult(out, res)
			}
		}
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultsToFile(results, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
