// Package cli implements the command-line interface for the restic
// Prometheus exporter.
//
// The exporter is a single long-running command:
//
//	restic-exporter [--config FILE] [--log-level LEVEL]
//
// It loads configuration (file or environment), starts the metrics HTTP
// server, and drives the polling loop until terminated. Missing required
// configuration or a restic invocation failure (unless continue_on_error is
// set) terminates the process with exit code 1; there is no normal exit,
// the loop runs until the process receives SIGINT or SIGTERM.
package cli
