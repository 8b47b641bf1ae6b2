// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Node creation and tree retrieval
//   - Single node lookup
//   - Health checks
//   - Prometheus metrics
package http
