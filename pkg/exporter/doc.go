// Package exporter maintains the snapshot metric families and drives the
// polling cycle that refreshes them.
//
// # Metric families
//
//   - restic_snapshot_count: scalar gauge, number of snapshots in the
//     repository.
//   - restic_snapshot_details{host,id,date,tags,directory}: gauge per
//     snapshot, value is the snapshot size in bytes.
//   - restic_snapshot_timestamp{host,id,date}: gauge per snapshot, value is
//     the snapshot's Unix timestamp.
//
// The date label is the Unix timestamp rendered as a string.
//
// # Cycle
//
// Each cycle invokes the lister, parses its output, and overwrites the
// registry state. The poller is the sole writer; scrapes read concurrently
// and may observe a mid-cycle mix of fresh and stale families. That
// staleness window is documented behavior, not a bug.
package exporter
