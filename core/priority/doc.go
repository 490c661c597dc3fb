// Package priority resolves vendor identifiers to integer authority ranks.
//
// Rank 1 is the highest authority. Vendors that are not configured, or whose
// stored rank is not a positive integer, resolve to SentinelRank (999) and never
// win a contest against a configured vendor.
//
// # Resolution
//
// A slug is trimmed and lower-cased, then matched against the vendor's short
// code, falling back to its display name. Both comparisons are handled by the
// injected VendorStore.
//
// # Cache
//
// Successful resolutions are cached for a TTL (5 minutes by default). The cache
// is an explicit component owned by the Registry: tests construct a fresh
// Registry per case and inject a clock with WithClock. When the store fails, a
// stale entry is served in preference to failing the caller; with no entry the
// sentinel rank is returned. Concurrent lookups of the same slug share a single
// store query.
//
// # Consistency
//
// Ranks are expected to form the contiguous sequence 1..N. ValidateConsistency
// reports null, non-positive, duplicate, gapped and overflowing ranks. AutoFix
// is the only mutating operation and is never called implicitly: it reorders
// vendors by their current rank and rewrites 1..N.
//
// # Usage
//
//	reg := priority.NewRegistry(store, logger)
//	rank, err := reg.Rank(ctx, "lipseys")
//
//	report, _ := reg.ValidateConsistency(ctx)
//	if !report.IsValid {
//	    fixed, err := reg.AutoFix(ctx)
//	}
package priority
