// Package metrics holds the Prometheus collectors of the gateway.
//
// Usage:
//
//	metrics.RecordUpstreamCall("sleep", "ok", 180*time.Millisecond)
//	metrics.RecordSessionEvent("rotate_failed")
//	metrics.RecordHTTPRequest("/sleep", 200)
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeEmpty = "empty"
)

var (
	// UpstreamCallsTotal counts Garmin Connect calls by operation and outcome.
	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garmin_upstream_calls_total",
			Help: "Total number of Garmin Connect API calls",
		},
		[]string{"operation", "outcome"},
	)

	// UpstreamCallDuration tracks the latency of Garmin Connect calls.
	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garmin_upstream_call_duration_seconds",
			Help:    "Duration of Garmin Connect API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// SessionEventsTotal counts bootstrap and rotation outcomes.
	SessionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garmin_session_events_total",
			Help: "Total number of session lifecycle events",
		},
		[]string{"event"},
	)

	// HTTPRequestsTotal counts served requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garmin_gateway_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "status"},
	)
)

// RecordUpstreamCall records one upstream call
func RecordUpstreamCall(operation, outcome string, d time.Duration) {
	UpstreamCallsTotal.WithLabelValues(operation, outcome).Inc()
	UpstreamCallDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordSessionEvent records a session lifecycle event such as "resumed"
func RecordSessionEvent(event string) {
	SessionEventsTotal.WithLabelValues(event).Inc()
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(route string, status int) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
