package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Realtime metrics
	RealtimeConnections prometheus.Gauge
	RealtimeEvents      *prometheus.CounterVec
	RealtimeEmits       *prometheus.CounterVec
	PresenceUsers       prometheus.Gauge

	// Domain metrics
	Notifications *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector on its own registry so several
// servers (and tests) can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkup_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linkup_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linkup_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linkup_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		RealtimeConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "linkup_realtime_connections",
				Help: "Number of open realtime connections",
			},
		),
		RealtimeEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkup_realtime_events_total",
				Help: "Total number of realtime lifecycle events",
			},
			[]string{"event"},
		),
		RealtimeEmits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkup_realtime_emits_total",
				Help: "Total number of server-to-client realtime events",
			},
			[]string{"event", "delivered"},
		),
		PresenceUsers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "linkup_presence_users",
				Help: "Number of users with a registered realtime connection",
			},
		),

		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkup_notifications_total",
				Help: "Total number of notifications created",
			},
			[]string{"type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "linkup_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (used by tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// ConnectionOpened records a new realtime connection
func (m *Metrics) ConnectionOpened() {
	m.RealtimeConnections.Inc()
	m.RealtimeEvents.WithLabelValues("connection").Inc()
}

// ConnectionClosed records a realtime disconnect
func (m *Metrics) ConnectionClosed() {
	m.RealtimeConnections.Dec()
	m.RealtimeEvents.WithLabelValues("disconnect").Inc()
}

// RecordEvent records a client-to-server realtime event
func (m *Metrics) RecordEvent(event string) {
	m.RealtimeEvents.WithLabelValues(event).Inc()
}

// RecordEmit records a server-to-client realtime event
func (m *Metrics) RecordEmit(event string, delivered bool) {
	label := "false"
	if delivered {
		label = "true"
	}
	m.RealtimeEmits.WithLabelValues(event, label).Inc()
}

// SetPresenceUsers sets the number of registered users
func (m *Metrics) SetPresenceUsers(count int) {
	m.PresenceUsers.Set(float64(count))
}

// RecordNotification records a created notification
func (m *Metrics) RecordNotification(kind string) {
	m.Notifications.WithLabelValues(kind).Inc()
}
