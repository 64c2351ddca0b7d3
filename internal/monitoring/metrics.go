package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	ToolErrors   *prometheus.CounterVec

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsClosed  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector on its own registry, so
// multiple instances (one per test, say) never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termbridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termbridge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		// Tool metrics
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termbridge_tool_calls_total",
				Help: "Total number of tool calls",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termbridge_tool_duration_seconds",
				Help:    "Tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"tool"},
		),
		ToolErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termbridge_tool_errors_total",
				Help: "Total number of tool errors",
			},
			[]string{"tool", "error_type"},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termbridge_sessions_active",
				Help: "Number of registered terminal sessions",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termbridge_sessions_created_total",
				Help: "Total number of terminal sessions created",
			},
		),
		SessionsClosed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termbridge_sessions_closed_total",
				Help: "Total number of terminal sessions closed or evicted",
			},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termbridge_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// Handler serves this collector's registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordToolCall records a tool call
func (m *Metrics) RecordToolCall(tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordToolError records a tool error
func (m *Metrics) RecordToolError(tool, errorType string) {
	m.ToolErrors.WithLabelValues(tool, errorType).Inc()
}

// SetSessionsActive sets the number of registered sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncSessionsCreated increments the sessions created counter
func (m *Metrics) IncSessionsCreated() {
	m.SessionsCreated.Inc()
}

// IncSessionsClosed increments the sessions closed counter
func (m *Metrics) IncSessionsClosed() {
	m.SessionsClosed.Inc()
}
