// Package errors provides structured error types for the restic exporter.
//
// StructuredError carries an error code for programmatic classification
// (configuration vs. invocation vs. internal failures), a human-readable
// message, the wrapped cause, and optional debugging context. It supports
// the standard errors.Is/errors.As chain via Unwrap.
package errors
