package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/metrics"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/progress"
	"github.com/agbru/mcsim/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// spinner and progress bar of DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running jobs.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer) {
	DisplayProgress(wg, progressChan, numJobs, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentSummaryTable displays one row per job with its headline value,
// duration and status. Padding is computed on the raw text so ANSI codes
// do not break the alignment.
func (CLIResultPresenter) PresentSummaryTable(results []orchestration.JobResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary ---\n")

	type row struct{ name, value, duration string }
	rows := make([]row, len(results))
	nameW, valueW, durW := len("Experiment"), len("Estimate"), len("Duration")
	for i, res := range results {
		r := row{name: res.Name, value: "-", duration: format.FormatExecutionDuration(res.Duration)}
		if res.Err == nil {
			label, v, kind := res.Summary.Headline()
			r.value = label + " " + FormatValue(v, kind)
		}
		nameW = max(nameW, len(r.name))
		valueW = max(valueW, len([]rune(r.value)))
		durW = max(durW, len([]rune(r.duration)))
		rows[i] = r
	}

	fmt.Fprintf(out, "%sExperiment%s%s   %sEstimate%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameW-len("Experiment")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", valueW-len("Estimate")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		r := rows[i]
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s   %s%s%s%s   %s\n",
			ui.ColorCyan(), r.name, ui.ColorReset(), padRight("", nameW-len(r.name)),
			r.value, padRight("", valueW-len([]rune(r.value))),
			ui.ColorYellow(), r.duration, ui.ColorReset(), padRight("", durW-len([]rune(r.duration))),
			status)
	}
}

// padRight pads s with spaces up to length extra characters.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the full report of a successful job. Quiet mode
// output is produced by DisplayResults instead.
func (CLIResultPresenter) PresentResult(result orchestration.JobResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		return
	}
	DisplayReport(out, result, opts.Verbose)
}

// HandleError prints err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleExecutionError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider implements apperrors.ColorProvider with the current theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats shows the memory used by a run, from snapshots taken
// before and after it.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	d := after.Since(before)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Allocated:   %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  Peak heap:   %s\n", format.FormatBytes(d.PeakHeap))
	fmt.Fprintf(out, "  GC cycles:   %d (%s paused)\n", d.GCCycles, d.GCPause.Round(time.Microsecond))
	fmt.Fprintf(out, "  Goroutines:  %d\n", after.Goroutines)
}
