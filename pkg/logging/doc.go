// Package logging provides structured logging for the restic exporter.
//
// It wraps the standard library slog package with exporter-wide defaults:
// JSON output to stderr, environment-based log level configuration
// (LOG_LEVEL), module/version context on every record, and source location
// tracking for debug logs.
//
// Setting the default logger (recommended, early in main):
//
//	logging.SetDefaultStructuredLogger("restic-exporter", version)
//
//	slog.Info("cycle complete", "snapshots", 12)
//	slog.Error("restic invocation failed", "error", err)
//
// Setting an explicit level (e.g. from a --log-level flag):
//
//	logging.SetDefaultStructuredLoggerWithLevel("restic-exporter", version, "debug")
//
// If LOG_LEVEL is not set and no explicit level is given, the level
// defaults to INFO.
package logging
