// Package diff implements the line-level differential change detector used to
// avoid reprocessing unchanged rows of large vendor feeds.
//
// A feed snapshot is newline-delimited text whose first non-blank line is a
// header. Compute compares a new snapshot against the previously persisted one
// using exact full-line equality: a row whose text is not present verbatim in
// the previous snapshot is reported as changed. This captures additions and
// modifications in a single O(n) pass without parsing any row.
//
// # Header
//
// The header line is always the first element of ChangeSet.ChangedLines so the
// result can be fed straight into a column mapper. It is never counted in the
// added, removed or changed statistics.
//
// # False positives
//
// Reordered columns or whitespace-only edits in an inert field are reported as
// changes. That bias is intentional: it can cause extra reprocessing but never
// misses a real change.
//
// # Usage
//
//	prev, _ := snapshots.Load(ctx, key)
//	cs := diff.Compute(prev, feed)
//	if !cs.HasChanges {
//	    return nil
//	}
//	rows := mapper.Map(cs.ChangedLines)
package diff
