// Package snapshot parses the human-readable table emitted by
// `restic snapshots` into typed records.
//
// The parser is deliberately tolerant: restic's table format is loosely
// column-aligned, so each line is whitespace-split and mapped positionally.
// Malformed lines are dropped, malformed values within a line default to
// zero values, and a single bad row never aborts the parse of the rest of
// the output.
package snapshot
