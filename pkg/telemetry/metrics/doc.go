// Package metrics provides Prometheus metrics for the relay gateway.
//
// The Collector owns a private Prometheus registry and exposes typed
// recording methods for the request path and the rate limiter. Metrics are
// served on /metrics via the promhttp handler.
//
// # Metrics
//
// Request metrics:
//   - relay_gateway_requests_total{endpoint,status}
//   - relay_gateway_request_duration_seconds{endpoint}
//   - relay_gateway_upstream_latency_seconds
//
// Rate limit metrics:
//   - relay_gateway_ratelimit_denied_total
//   - relay_gateway_ratelimit_identities
//   - relay_gateway_ratelimit_sweeps_total
//
// # Usage
//
//	collector := metrics.NewCollector(cfg, nil)
//	mux.Handle("/metrics", collector.Handler())
//	collector.RecordRequest("/api/chat", 200, duration)
package metrics
