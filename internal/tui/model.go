package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mcsim/internal/cli"
	"github.com/agbru/mcsim/internal/config"
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/format"
	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/simulation"
	"github.com/agbru/mcsim/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	tickInterval    = 500 * time.Millisecond
	historyLength   = 40
	progressBarSize = 30
	minWidth        = 60
)

// jobRow is the dashboard state of one job.
type jobRow struct {
	name        string
	description string
	progress    float64
	result      *orchestration.JobResult
	err         error
}

// ExecutionState holds the run-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	lastErr    error
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header HeaderModel
	keymap KeyMap

	ExecutionState

	jobs     []orchestration.Job
	rows     []jobRow
	selected int
	average  float64
	eta      time.Duration

	cpu *history
	mem *history

	parentCtx context.Context
	config    config.AppConfig
	base      simulation.Options
	runs      orchestration.RunObserver
	ref       *programRef
	paused    bool
	width     int
	height    int
}

// NewModel creates a dashboard for jobs. The run starts with Init.
func NewModel(parentCtx context.Context, jobs []orchestration.Job, cfg config.AppConfig, base simulation.Options, runs orchestration.RunObserver, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header: NewHeaderModel(version),
		keymap: DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		jobs:      jobs,
		rows:      newRows(jobs),
		cpu:       newHistory(historyLength),
		mem:       newHistory(historyLength),
		parentCtx: parentCtx,
		config:    cfg,
		base:      base,
		runs:      runs,
		ref:       &programRef{},
	}
}

func newRows(jobs []orchestration.Job) []jobRow {
	rows := make([]jobRow, len(jobs))
	for i, j := range jobs {
		rows[i] = jobRow{name: j.Name, description: j.Description}
	}
	return rows
}

// Init starts the run, the refresh ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.jobs, m.config, m.base, m.runs, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		return m, nil

	case ProgressMsg:
		if msg.JobIndex >= 0 && msg.JobIndex < len(m.rows) {
			m.rows[msg.JobIndex].progress = msg.Value
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case JobResultMsg:
		if i := m.rowIndex(msg.Result.Name); i >= 0 {
			res := msg.Result
			m.rows[i].result = &res
			m.rows[i].progress = 1
		}
		return m, nil

	case ErrorMsg:
		m.lastErr = msg.Err
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		for _, r := range msg.Results {
			if i := m.rowIndex(r.Name); i >= 0 && r.Err != nil {
				m.rows[i].err = r.Err
			}
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		if m.exitCode == apperrors.ExitSuccess {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleSysStatsCmd(m.ctx), tickCmd())

	case SysStatsMsg:
		m.cpu.add(msg.CPUPercent)
		m.mem.add(msg.MemPercent)
		return m, nil
	}

	return m, nil
}

func (m Model) rowIndex(name string) int {
	for i, r := range m.rows {
		if r.name == name {
			return i
		}
	}
	return -1
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.rows = newRows(m.jobs)
		m.cpu.reset()
		m.mem.reset()
		m.average, m.eta = 0, 0
		m.done, m.paused = false, false
		m.exitCode = apperrors.ExitSuccess
		m.lastErr = nil

		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.jobs, m.config, m.base, m.runs, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	width := max(m.width, minWidth)

	jobs := panelStyle.Width(width - 2).Render(m.jobsView())
	detail := panelStyle.Width(width - 2).Render(m.detailView())
	system := panelStyle.Width(width - 2).Render(m.systemView())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(m.statusView()), jobs, detail, system, m.footerView())
}

func (m Model) statusView() string {
	switch {
	case m.done && m.exitCode != apperrors.ExitSuccess:
		return errorStyle.Render("Failed")
	case m.done:
		return statusDoneStyle.Render("Done")
	case m.paused:
		return statusPausedStyle.Render("Paused")
	default:
		return statusRunningStyle.Render("Running")
	}
}

func (m Model) jobsView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		labelStyle.Render(fmt.Sprintf("Trials %s", format.FormatCount(m.config.Trials))),
		labelStyle.Render(fmt.Sprintf("Workers %d", m.config.Workers)),
		labelStyle.Render(fmt.Sprintf("ETA %s", format.FormatETA(m.eta))))
	for i, r := range m.rows {
		name := fmt.Sprintf("%-14s", r.name)
		if i == m.selected {
			name = selectedStyle.Render("> " + name)
		} else {
			name = "  " + name
		}
		fmt.Fprintf(&b, "%s %s %s\n", name, format.ProgressBar(r.progress, progressBarSize), rowStatus(r))
	}
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Overall        "), format.ProgressBar(m.average, progressBarSize))
	return b.String()
}

func rowStatus(r jobRow) string {
	switch {
	case r.err != nil:
		return errorStyle.Render("✗ failed")
	case r.result != nil:
		_, v, kind := r.result.Summary.Headline()
		return successStyle.Render("✓ " + cli.FormatValue(v, kind))
	default:
		return dimStyle.Render(fmt.Sprintf("%5.1f%%", r.progress*100))
	}
}

func (m Model) detailView() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("no experiments")
	}
	r := m.rows[m.selected]
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.description))
	switch {
	case r.err != nil:
		b.WriteString("\n" + errorStyle.Render(r.err.Error()))
	case r.result == nil:
		b.WriteString("\n" + dimStyle.Render("running..."))
	default:
		s := r.result.Summary
		row := func(label, value string) {
			fmt.Fprintf(&b, "\n%s %s", labelStyle.Render(fmt.Sprintf("%-18s", label)), value)
		}
		row("Samples", valueStyle.Render(format.FormatCount(s.Samples)))
		for _, d := range s.Derived {
			value := valueStyle.Render(cli.FormatValue(d.Value, d.Kind))
			if d.Interval != nil {
				value += "  " + dimStyle.Render(cli.FormatInterval(*d.Interval, d.Kind))
			}
			row(d.Label, value)
		}
		if s.Verdict != "" {
			row("Verdict", warningStyle.Render(s.Verdict))
		}
		row("Duration", format.FormatExecutionDuration(r.result.Duration))
	}
	if m.lastErr != nil && r.err == nil {
		b.WriteString("\n" + errorStyle.Render("run error: "+m.lastErr.Error()))
	}
	return b.String()
}

func (m Model) systemView() string {
	return fmt.Sprintf("%s %s %s\n%s %s %s",
		labelStyle.Render("CPU"), accentStyle.Render(sparkline(m.cpu.samples)), valueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.last())),
		labelStyle.Render("MEM"), accentStyle.Render(sparkline(m.mem.samples)), valueStyle.Render(fmt.Sprintf("%5.1f%%", m.mem.last())))
}

func (m Model) footerView() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, dimStyle.Render("  •  "))
}

// Run starts the dashboard and blocks until the user quits. It returns
// the exit code of the last run.
func Run(ctx context.Context, jobs []orchestration.Job, cfg config.AppConfig, base simulation.Options, runs orchestration.RunObserver, version string) int {
	initTUIStyles()

	model := NewModel(ctx, jobs, cfg, base, runs, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		if m.exitCode == apperrors.ExitSuccess && ctx.Err() != nil {
			return apperrors.ExitCodeFor(ctx.Err())
		}
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd executes the jobs and reports completion.
func startRunCmd(ref *programRef, ctx context.Context, jobs []orchestration.Job, cfg config.AppConfig, base simulation.Options, runs orchestration.RunObserver, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}
		results := orchestration.ExecuteJobs(ctx, jobs, base, runs, &TUIProgressReporter{ref: ref}, io.Discard)
		opts := orchestration.PresentationOptions{Verbose: cfg.Verbose}
		exitCode := orchestration.AnalyzeResults(results, opts, presenter, presenter, io.Discard)
		return RunCompleteMsg{Results: results, ExitCode: exitCode, Generation: gen}
	}
}

// watchContextCmd reports when ctx ends, for example on SIGINT or timeout.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample(ctx))
	}
}
