package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mcsim/internal/ui"
)

// Dashboard styles, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	accentStyle        lipgloss.Style
	selectedStyle      lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	successStyle       lipgloss.Style
	warningStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	footerKeyStyle     lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from ui.CurrentTUITheme. Run calls it
// again after the theme has been selected.
func initTUIStyles() {
	t := ui.CurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	selectedStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	footerKeyStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	statusRunningStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	statusPausedStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}
