// Package snapshot persists the last processed feed per vendor and scope so
// the next sync can diff against it.
//
// Keys have the form "<vendor>/<scope>". ObjectStore writes them to a bucket as
// "<prefix>/<vendor>/<scope>.txt"; FileStore uses the same layout under a
// directory. A missing snapshot is not an error: Load returns nil and the
// caller processes the full feed.
package snapshot
