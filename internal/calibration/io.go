package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []calibrationResult, bestWorkers int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s │ %sDuration%s     │ %sThroughput%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 8), strings.Repeat("─", 14), strings.Repeat("─", 28))
	for _, res := range results {
		duration := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		throughput := duration
		if res.Err == nil {
			duration = format.FormatExecutionDuration(res.Duration)
			throughput = fmt.Sprintf("%s trials/s", format.FormatCount(uint64(res.Throughput)))
		}
		highlight := ""
		if res.Workers == bestWorkers && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-7d%s │ %s%-12s%s │ %s%s\n",
			ui.ColorCyan(), res.Workers, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			throughput, highlight)
	}
	tw.Flush()
}

// printCalibrationOutput reports the saved profile.
func printCalibrationOutput(out io.Writer, p *CalibrationProfile, path string) {
	fmt.Fprintf(out, "\n%sCalibration%s: workers=%s%d%s (%s trials/s), saved to %s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), p.OptimalWorkers, ui.ColorReset(),
		format.FormatCount(uint64(p.Throughput)), path)
}
