// Package config loads the service configuration.
//
// Values come from the environment, optionally seeded from a .env file, with
// defaults taken from the `default` struct tags of each section. Keys map to
// environment variables by section: sync.snapshot_dir is SYNC_SNAPSHOT_DIR.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, upload limit
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the snapshot bucket
//   - Log: logging level and format
//   - Guard: job guard backend (memory or redis)
//   - Sync: snapshot backend, feed delimiter, rank cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
