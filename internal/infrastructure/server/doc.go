// Package server wires configuration, storage, the shell and the HTTP
// stack into a runnable process.
//
// Middleware order: recovery, tracing, metrics, request log, CORS, then
// the optional per-IP rate limit. /stream serves the WebSocket hub and
// /metrics the Prometheus registry.
package server
