// Package logger builds the zap logger shared by the server and the CLI.
//
// LOG_LEVEL=debug selects zap's development preset; any other level uses the
// production preset at that level (unknown values fall back to info).
// LOG_FORMAT selects json or console encoding.
//
// HTTP handlers derive a request logger with WithRayID so that every line of a
// sync run triggered over HTTP carries the ray_id set by the rayid middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Info("Sync triggered", zap.String("vendor", vendor))
package logger
