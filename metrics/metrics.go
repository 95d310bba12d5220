// Package metrics provides Prometheus metrics for CoffreFort client operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for client operations.
type Metrics struct {
	enabled bool

	// Request metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram

	// Session metrics
	authFailuresTotal  *prometheus.CounterVec
	forcedLogoutsTotal prometheus.Counter
	sessionState       prometheus.Gauge
}

// New creates and registers Prometheus metrics.
// If enabled is false, returns a no-op Metrics instance.
func New(enabled bool) *Metrics {
	m := &Metrics{enabled: enabled}

	if !enabled {
		return m
	}

	m.requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffrefort_requests_total",
		Help: "Total requests to the CoffreFort service",
	}, []string{"endpoint", "outcome"})

	m.requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coffrefort_request_duration_seconds",
		Help:    "Request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	m.authFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffrefort_auth_failures_total",
		Help: "Total authorization failures",
	}, []string{"reason"})

	m.forcedLogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffrefort_forced_logouts_total",
		Help: "Total sessions cleared after an authorization failure",
	})

	m.sessionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coffrefort_session_authenticated",
		Help: "Whether a session token is currently held (0 or 1)",
	})

	return m
}

// RecordRequest records one request with its outcome
// ("ok", "auth", "client_error", "server_error", "connectivity").
func (m *Metrics) RecordRequest(endpoint, outcome string, durationSeconds float64) {
	if !m.enabled {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.requestDuration.Observe(durationSeconds)
}

// RecordAuthFailure records a rejected credential or token.
func (m *Metrics) RecordAuthFailure(reason string) {
	if !m.enabled {
		return
	}
	m.authFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordForcedLogout records a session cleared in reaction to a 401.
func (m *Metrics) RecordForcedLogout() {
	if !m.enabled {
		return
	}
	m.forcedLogoutsTotal.Inc()
}

// SetSessionState sets whether a session token is currently held.
func (m *Metrics) SetSessionState(authenticated bool) {
	if !m.enabled {
		return
	}
	state := 0.0
	if authenticated {
		state = 1.0
	}
	m.sessionState.Set(state)
}
