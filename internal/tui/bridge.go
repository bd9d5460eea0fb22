package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/progress"
)

// programRef outlives the Model copies made by Update, which lets the
// reporter goroutines reach the program started after NewModel.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated job progress as ProgressMsg.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress turns every update into a ProgressMsg and finishes with
// ProgressDoneMsg once the channel closes.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numJobs int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numJobs)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			JobIndex:        ap.JobIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter sends results to the program instead of writing them.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentSummaryTable is a no-op: every job already has its own row.
func (t *TUIResultPresenter) PresentSummaryTable([]orchestration.JobResult, io.Writer) {}

// PresentResult sends a finished job to the program.
func (t *TUIResultPresenter) PresentResult(result orchestration.JobResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(JobResultMsg{Result: result})
}

// HandleError sends the error to the program and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.ExitCodeFor(err)
}
