// Package server exposes the exporter's metrics registry over HTTP.
//
// Endpoints:
//
//   - /metrics: the Prometheus exposition endpoint, wrapped in the
//     middleware chain (request ID, panic recovery, rate limiting,
//     request logging, scrape instrumentation).
//   - /health: liveness probe, always healthy while the process runs.
//   - /ready: readiness probe, flips once Start is called and back off
//     during shutdown.
//
// The server is a pure reader of the metrics registry. No authentication is
// performed on any endpoint.
package server
