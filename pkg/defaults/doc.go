// Package defaults centralizes default values and timeouts used across the
// exporter. Keeping them in one place makes operational tuning reviewable
// and avoids magic numbers scattered through the codebase.
package defaults
