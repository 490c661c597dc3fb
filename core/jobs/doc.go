// Package jobs guards per-vendor sync jobs against overlapping runs.
//
// A Guard moves a key from Idle to Running on TryAcquire and back on Release.
// A caller that loses the race must treat the run as a no-op. MemoryGuard
// serves a single process; RedisGuard holds a leased lock in Redis so several
// scheduler instances can share one key space.
package jobs
