package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/mcsim/internal/config"
	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/ui"
)

// PrintExecutionConfig displays the run configuration: trial count,
// worker pool, seed, confidence level, timeout and host environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Running %s%s%s trials on %s%d%s workers (seed %d) with a timeout of %s%s%s.\n",
		ui.ColorCyan(), format.FormatCount(cfg.Trials), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(), cfg.Seed,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Confidence level: %s%g%%%s.\n", ui.ColorCyan(), cfg.Confidence*100, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether one experiment or several run.
//
// Parameters:
//   - jobs: The jobs that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(jobs []orchestration.Job, out io.Writer) {
	var modeDesc string
	switch len(jobs) {
	case 0:
		modeDesc = "No experiment selected"
	case 1:
		modeDesc = fmt.Sprintf("Single run of the %s%s%s experiment", ui.ColorGreen(), jobs[0].Description, ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel run of %d experiments", len(jobs))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
