// Package telemetry provides observability for the relay gateway.
//
// # Overview
//
// The telemetry package collects Prometheus metrics covering request
// handling, upstream latency, and rate limiter behavior. Metrics are kept
// in a private registry and exposed over HTTP through the gateway's
// metrics endpoint.
//
// # Components
//
//   - metrics: Prometheus metrics collection and the exposition handler
//
// # Usage
//
//	registry := prometheus.NewRegistry()
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)
//
//	collector.RecordRequest("/api/chat", http.StatusOK, duration)
//	mux.Handle(cfg.Telemetry.Metrics.Path, metrics.Handler(registry))
//
// Collection is disabled entirely when metrics are turned off in the
// configuration; every Record method becomes a no-op.
package telemetry
