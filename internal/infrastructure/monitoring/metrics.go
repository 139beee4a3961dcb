package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window manager metrics
	WindowsOpen      prometheus.Gauge
	WindowsMinimized prometheus.Gauge
	WindowOps        *prometheus.CounterVec

	// File system metrics
	FileItems prometheus.Gauge
	FileOps   *prometheus.CounterVec

	// Power metrics
	PowerState       *prometheus.GaugeVec
	PowerTransitions *prometheus.CounterVec

	// Store metrics
	StoreOps      *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec

	// Registry metrics
	RegistryApps prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"total_duration_seconds"`
	RequestCount      int64   `json:"request_count"`
	PowerState        string  `json:"power_state"`
}

// NewMetrics creates a metrics collector with its own registry, so
// several instances (one per test server) never collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Window manager metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_windows_open",
				Help: "Number of open windows",
			},
		),
		WindowsMinimized: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_windows_minimized",
				Help: "Number of minimized windows",
			},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_window_operations_total",
				Help: "Window manager operations by kind",
			},
			[]string{"op"},
		),

		// File system metrics
		FileItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_vfs_items",
				Help: "Number of records in the virtual file system",
			},
		),
		FileOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_vfs_operations_total",
				Help: "Virtual file system mutations by kind",
			},
			[]string{"op"},
		),

		// Power metrics
		PowerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "webdesk_power_state",
				Help: "Current power state (1 for the active label)",
			},
			[]string{"state"},
		),
		PowerTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_power_transitions_total",
				Help: "Power state transitions",
			},
			[]string{"from", "to"},
		),

		// Store metrics
		StoreOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_store_operations_total",
				Help: "Key-value store operations",
			},
			[]string{"op", "status"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_store_duration_seconds",
				Help:    "Key-value store operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"op"},
		),

		// Registry metrics
		RegistryApps: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_registry_apps",
				Help: "Number of apps in registry",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "webdesk_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp counts a window manager operation
func (m *Metrics) RecordWindowOp(op string) {
	m.WindowOps.WithLabelValues(op).Inc()
}

// SetWindows sets the open and minimized window gauges
func (m *Metrics) SetWindows(open, minimized int) {
	m.WindowsOpen.Set(float64(open))
	m.WindowsMinimized.Set(float64(minimized))
	m.mu.Lock()
	m.snapshot.OpenWindows = int64(open)
	m.mu.Unlock()
}

// RecordFileOp counts a file system mutation
func (m *Metrics) RecordFileOp(op string) {
	m.FileOps.WithLabelValues(op).Inc()
}

// SetFileItems sets the number of file system records
func (m *Metrics) SetFileItems(count int) {
	m.FileItems.Set(float64(count))
}

// RecordPowerTransition counts a transition and moves the state gauge
func (m *Metrics) RecordPowerTransition(from, to string) {
	m.PowerTransitions.WithLabelValues(from, to).Inc()
	m.SetPowerState(to)
}

// SetPowerState marks the current power state
func (m *Metrics) SetPowerState(state string) {
	m.PowerState.Reset()
	m.PowerState.WithLabelValues(state).Set(1)
	m.mu.Lock()
	m.snapshot.PowerState = state
	m.mu.Unlock()
}

// ObserveStore records a key-value store call
func (m *Metrics) ObserveStore(op string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StoreOps.WithLabelValues(op, status).Inc()
	m.StoreDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetRegistryApps sets the number of apps in registry
func (m *Metrics) SetRegistryApps(count int) {
	m.RegistryApps.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}
