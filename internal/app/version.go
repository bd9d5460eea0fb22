package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build information, set with -ldflags "-X github.com/agbru/mcsim/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version, so main can
// answer before any configuration is validated.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-version" || a == "--version"
	})
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "mcsim %s (commit %s, built %s) %s %s/%s\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
