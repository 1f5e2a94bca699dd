// Package metrics provides Prometheus collectors for the weather MCP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tool invocation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

var (
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_tool_invocations_total",
			Help: "Total number of get_weather invocations by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"api", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_upstream_request_duration_seconds",
			Help:    "Upstream API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"api"},
	)

	ProbeSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weather_probe_success",
			Help: "1 if the last upstream probe succeeded, 0 otherwise",
		},
	)
)

// RecordToolInvocation counts a tool call with the given outcome.
func RecordToolInvocation(outcome string) {
	ToolInvocationsTotal.WithLabelValues(outcome).Inc()
}
