// Package server exposes the latest tick over HTTP.
//
// The server is optional and read-only. It provides two routes:
//
//   - GET /healthz: liveness probe, always "ok"
//   - GET /api/status: the latest completed tick as JSON
//
// Only the most recent tick is available; there is no history.
package server
