// Package middleware groups the fiber middleware mounted by the start command.
//
//   - rayid: propagates X-Ray-ID or generates one, and stores it in the
//     request locals for logger.WithRayID.
//   - auth: requires the configured API key on every route except the skip
//     list (health and metrics).
//
// rayid is mounted first so that rejected requests are still traceable.
package middleware
