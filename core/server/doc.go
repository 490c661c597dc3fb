// Package server holds the HTTP server configuration.
//
// While the start command builds and runs the fiber app, this package defines
// the settings it reads and validates them.
//
// # Configuration
//
// The Config struct defines:
//   - Port: the listen port.
//   - ApiKey: required on every route except /health and /metrics. Empty
//     disables authentication.
//   - BodyLimitMB: the largest feed accepted by POST /sync/:vendor.
//   - ShutdownSeconds: how long in-flight syncs get on SIGTERM.
//
// # Usage
//
// Config is embedded in core/config and read by cmd/start.go:
//
//	app := fiber.New(fiber.Config{BodyLimit: cfg.Server.BodyLimit()})
package server
