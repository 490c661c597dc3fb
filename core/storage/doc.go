// Package storage wraps the MinIO Go client behind the small Client interface
// the snapshot store needs. It works against AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// Client is the subset of *minio.Client used by feature/snapshot. Keeping it
// small lets tests use the testify mock in core/storage/mocks instead of a
// running MinIO.
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket at startup.
//   - PutObject: stores the last successfully processed feed.
//   - GetObject: streams a stored feed back for diffing.
//   - ListObjects: enumerates stored snapshot keys.
//   - RemoveObject: forgets a snapshot so the next run is a full run.
//
// # Errors
//
// IsNotFound recognises NoSuchKey and NoSuchBucket responses, also when they
// are wrapped, so a missing snapshot can be treated as "no previous feed".
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
