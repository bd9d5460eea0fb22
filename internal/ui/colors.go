package ui

// Each helper returns the escape sequence of the active theme.

func ColorCyan() string      { return CurrentTheme().Primary }
func ColorMuted() string     { return CurrentTheme().Muted }
func ColorGreen() string     { return CurrentTheme().Success }
func ColorYellow() string    { return CurrentTheme().Warning }
func ColorRed() string       { return CurrentTheme().Error }
func ColorBold() string      { return CurrentTheme().Bold }
func ColorUnderline() string { return CurrentTheme().Underline }
func ColorReset() string     { return CurrentTheme().Reset }
