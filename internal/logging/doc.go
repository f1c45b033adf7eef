// Package logging assembles structured slog loggers and formatting helpers used
// across filesort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so organizer code can tag log
// lines with the run ID and strategy automatically. When a log file is
// configured, console output and JSON file output are fanned out from one
// logger. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
package logging
