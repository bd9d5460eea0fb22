package tui

import (
	"time"

	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/sysmon"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	JobIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// JobResultMsg carries a successful job.
type JobResultMsg struct {
	Result orchestration.JobResult
}

// ErrorMsg carries the first failure of a run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// RunCompleteMsg is sent when every job has been analyzed.
type RunCompleteMsg struct {
	Results    []orchestration.JobResult
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives the periodic refresh.
type TickMsg time.Time

// SysStatsMsg carries a host resource sample.
type SysStatsMsg sysmon.Stats
