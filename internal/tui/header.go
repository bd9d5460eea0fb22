package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mcsim/internal/format"
)

// HeaderModel renders the top bar: title, version, run status and elapsed
// time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
}

// NewHeaderModel creates a header whose timer starts now.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the running or frozen elapsed time.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header with status right-aligned.
func (h HeaderModel) View(status string) string {
	title := "mcsim dashboard"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	left := titleStyle.Render(title) + dimStyle.Render(" | ") +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed().Round(time.Millisecond))))
	gap := max(0, h.width-2-lipgloss.Width(left)-lipgloss.Width(status))
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + status)
}
