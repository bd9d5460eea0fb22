// Package logging defines the Logger contract shared by the engine, the
// calibration probes and the CLI. The default backend is zerolog; a
// standard library adapter exists for callers that already own a *log.Logger.
package logging
