package metrics

import (
	"lanternhq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LimitMetrics tracks metrics for the sliding-window rate limiter.
//
// Metrics:
//   - relay_gateway_ratelimit_denied_total: requests denied by the limiter
//   - relay_gateway_ratelimit_identities: identities currently tracked
//   - relay_gateway_ratelimit_sweeps_total: completed sweep runs
//   - relay_gateway_ratelimit_swept_identities_total: identities removed by sweeps
type LimitMetrics struct {
	deniedTotal       prometheus.Counter
	trackedIdentities prometheus.Gauge
	sweepsTotal       prometheus.Counter
	sweptIdentities   prometheus.Counter
}

// NewLimitMetrics creates and registers rate limit metrics with the provided registry.
func NewLimitMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LimitMetrics {
	lm := &LimitMetrics{
		deniedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_denied_total",
				Help:      "Total number of requests denied by the rate limiter",
			},
		),

		trackedIdentities: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_identities",
				Help:      "Number of identities currently tracked by the rate limiter",
			},
		),

		sweepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_sweeps_total",
				Help:      "Total number of completed rate limiter sweeps",
			},
		),

		sweptIdentities: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_swept_identities_total",
				Help:      "Total number of stale identities removed by sweeps",
			},
		),
	}

	registry.MustRegister(
		lm.deniedTotal,
		lm.trackedIdentities,
		lm.sweepsTotal,
		lm.sweptIdentities,
	)

	return lm
}

// RecordDenied records a request denied by the rate limiter.
func (lm *LimitMetrics) RecordDenied() {
	lm.deniedTotal.Inc()
}

// UpdateTrackedIdentities updates the tracked identity gauge.
func (lm *LimitMetrics) UpdateTrackedIdentities(n int) {
	lm.trackedIdentities.Set(float64(n))
}

// RecordSweep records one completed sweep and the identities it removed.
func (lm *LimitMetrics) RecordSweep(removed int) {
	lm.sweepsTotal.Inc()
	if removed > 0 {
		lm.sweptIdentities.Add(float64(removed))
	}
}
