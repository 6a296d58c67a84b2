// Package restic invokes the restic command-line tool and exposes its raw
// snapshot-listing output.
//
// The package is a thin subprocess boundary: it knows how to run restic with
// the repository and credential environment entries, and nothing about the
// shape of the output. A non-zero exit from restic (bad credentials,
// unreachable repository) surfaces as an EXEC_FAILED structured error
// carrying the captured stderr.
package restic
