// Package server provides the HTTP server for the relay gateway.
//
// The server wires the endpoint handlers behind the shared middleware
// chain (recovery, logging, request IDs, CORS), owns the net/http server
// lifecycle, and shuts down gracefully on context cancellation or
// SIGINT/SIGTERM.
//
// Routes:
//
//	POST /api/chat           validated, rate-limited chat proxy
//	GET  /health             liveness probe
//	GET  /metrics            Prometheus exposition (when enabled)
//	GET  /api/sessions/{id}  session placeholder
//	*                        JSON 404 fallback
package server
