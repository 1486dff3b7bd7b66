package metrics

import (
	"time"

	"lanternhq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in the relay
// gateway. It manages metric registration and provides a unified interface
// for recording metrics from the request path and the rate limiter.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics *RequestMetrics
	limitMetrics   *LimitMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "relay"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "gateway"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// Covers fast rejections through slow upstream calls (1ms - 30s).
		cfg.RequestDurationBuckets = []float64{0.001, 0.005, 0.025, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.limitMetrics = NewLimitMetrics(cfg, registry)

	return c
}

// RecordRequest records metrics for a completed gateway request.
func (c *Collector) RecordRequest(endpoint string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordRequest(endpoint, status, duration)
}

// RecordUpstreamLatency records the round-trip time of an upstream call.
func (c *Collector) RecordUpstreamLatency(latency time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordUpstreamLatency(latency)
}

// RecordRateLimitDenied records a request denied by the rate limiter.
func (c *Collector) RecordRateLimitDenied() {
	if !c.config.Enabled {
		return
	}
	c.limitMetrics.RecordDenied()
}

// UpdateTrackedIdentities updates the gauge of identities the rate limiter
// currently tracks.
func (c *Collector) UpdateTrackedIdentities(n int) {
	if !c.config.Enabled {
		return
	}
	c.limitMetrics.UpdateTrackedIdentities(n)
}

// RecordSweep records one completed rate limiter sweep.
func (c *Collector) RecordSweep(removed int) {
	if !c.config.Enabled {
		return
	}
	c.limitMetrics.RecordSweep(removed)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
