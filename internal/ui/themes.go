package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for CLI output.
type Theme struct {
	Name      string
	Primary   string
	Muted     string
	Success   string
	Warning   string
	Error     string
	Bold      string
	Underline string
	Reset     string
}

var (
	// ColorTheme is the default 256-color palette.
	ColorTheme = Theme{
		Name:      "color",
		Primary:   "\033[38;5;44m",
		Muted:     "\033[38;5;245m",
		Success:   "\033[38;5;78m",
		Warning:   "\033[38;5;214m",
		Error:     "\033[38;5;203m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// PlainTheme emits no escape sequences.
	PlainTheme = Theme{Name: "none"}

	mu      sync.RWMutex
	current = ColorTheme
)

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	colorTUITheme = TUITheme{
		Text:    lipgloss.Color("#DADADA"),
		Border:  lipgloss.Color("#00AFAF"),
		Accent:  lipgloss.Color("#5FD7D7"),
		Success: lipgloss.Color("#5FD787"),
		Warning: lipgloss.Color("#FFAF00"),
		Error:   lipgloss.Color("#FF5F5F"),
		Dim:     lipgloss.Color("#6C6C6C"),
	}
	plainTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// InitTheme selects the plain theme when noColor is set or the NO_COLOR
// variable exists (https://no-color.org/), and the color theme otherwise.
func InitTheme(noColor bool) {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	if noColor || envNoColor {
		SetCurrentTheme(PlainTheme)
		return
	}
	SetCurrentTheme(ColorTheme)
}

// CurrentTheme returns the active CLI theme.
func CurrentTheme() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetCurrentTheme replaces the active CLI theme.
func SetCurrentTheme(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	current = t
}

// CurrentTUITheme returns the dashboard palette matching the CLI theme.
func CurrentTUITheme() TUITheme {
	if CurrentTheme().Name == PlainTheme.Name {
		return plainTUITheme
	}
	return colorTUITheme
}
