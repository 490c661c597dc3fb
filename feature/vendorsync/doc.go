// Package vendorsync drives one vendor feed through the reconciliation core.
//
// A run takes the full feed text for a (vendor, scope) pair and:
//
//  1. acquires the job guard, returning a busy result when the job is running
//  2. loads the previous snapshot, falling back to a full run when it cannot
//  3. diffs the feed against it and maps the changed lines to rows
//  4. reconciles the rows and persists the feed as the next baseline
//
// The snapshot is only replaced after a successful, non dry-run
// reconciliation, so a failed batch is retried in full on the next run.
//
// The Handler exposes runs over HTTP:
//
//	POST /sync/:vendor?company=42&dry_run=true   (body = feed text)
//	GET  /sync/status
package vendorsync
