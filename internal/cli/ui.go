package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/progress"
	"github.com/agbru/mcsim/internal/simulation"
	"github.com/agbru/mcsim/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so the progress display can be
// tested without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// BarReporter renders engine progress as a spinner followed by a progress
// bar. It implements simulation.Reporter, so it can be handed directly to
// a single engine run, and it is the renderer behind DisplayProgress.
type BarReporter struct {
	mu      sync.Mutex
	spinner Spinner
	label   string
	running bool
}

var _ simulation.Reporter = (*BarReporter)(nil)

// NewBarReporter creates a stopped reporter writing to out.
func NewBarReporter(out io.Writer, label string) *BarReporter {
	return &BarReporter{
		spinner: newSpinner(spinner.WithWriter(out)),
		label:   label,
	}
}

// Start begins the animation. It is a no-op when already running.
func (b *BarReporter) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		b.running = true
		b.spinner.Start()
	}
}

// Stop halts the animation. It is a no-op when not running.
func (b *BarReporter) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		b.running = false
		b.spinner.Stop()
	}
}

// Report renders percent (0 to 100) without an ETA.
func (b *BarReporter) Report(percent float64) {
	b.render(fmt.Sprintf("%s %s%6.2f%%%s", format.ProgressBar(percent/100, ProgressBarWidth), ui.ColorCyan(), percent, ui.ColorReset()))
}

// ReportWithETA renders a fraction (0 to 1) with the estimated time left.
func (b *BarReporter) ReportWithETA(fraction float64, eta time.Duration) {
	b.render(format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth))
}

func (b *BarReporter) render(bar string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	label := ""
	if b.label != "" {
		label = b.label + " "
	}
	b.spinner.UpdateSuffix(" " + label + bar)
}

// DisplayProgress renders the aggregated progress of numJobs jobs until
// progressChan is closed, refreshing the ETA every ProgressRefreshRate.
//
// Parameters:
//   - wg: Signalled when the display has finished.
//   - progressChan: Channel receiving per-job updates (values 0 to 1).
//   - numJobs: The number of jobs writing to the channel.
//   - out: The writer for the progress display.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numJobs)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Running"
	if agg.IsMultiJob() {
		label = fmt.Sprintf("Running %d experiments", numJobs)
	}
	bar := NewBarReporter(out, label)
	bar.Start()
	defer bar.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				bar.ReportWithETA(agg.CalculateAverage(), 0)
				return
			}
			ap := agg.Update(update)
			bar.ReportWithETA(ap.AverageProgress, ap.ETA)
		case <-ticker.C:
			bar.ReportWithETA(agg.CalculateAverage(), agg.GetETA())
		}
	}
}
