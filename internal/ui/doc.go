// Package ui holds the color palettes of the CLI and the TUI.
//
// The CLI uses raw ANSI escapes through the Color* helpers; the TUI uses
// lipgloss colors from CurrentTUITheme. Both honour -no-color and the
// NO_COLOR convention.
package ui
