// Package config loads and validates exporter configuration.
//
// Configuration comes from one of two sources: a YAML config file (when the
// --config flag is given) or environment variables. Both sources produce the
// same finished Config record. The restic repository target and password are
// required; everything else has defaults (port 9150, 30s polling interval).
package config
