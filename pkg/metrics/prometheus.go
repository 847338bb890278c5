// Package metrics provides Prometheus metrics for the podium dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Selector kinds used as the label of the selector change counter. Sport
// names are not used as labels so unknown selectors cannot grow cardinality.
const (
	SelectorAll     = "all"
	SelectorSport   = "sport"
	SelectorUnknown = "unknown"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset
	datasetRecords prometheus.Gauge
	datasetSports  prometheus.Gauge

	// Dashboard pipeline
	selectorChanges  *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	emptySelections  prometheus.Counter

	// Rendering
	chartRenders        *prometheus.CounterVec
	chartRenderDuration *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByType     *prometheus.CounterVec
	errorsByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Metrics register on the
// configured registry (prometheus.DefaultRegisterer unless overridden).
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_records",
		Help:        "Number of medal records loaded",
		ConstLabels: labels,
	})

	m.datasetSports = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_sports",
		Help:        "Number of distinct sports in the loaded dataset",
		ConstLabels: labels,
	})

	m.selectorChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selector_changes_total",
		Help:        "Selector transitions by kind (all, sport, unknown)",
		ConstLabels: labels,
	}, []string{"kind"})

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pipeline_duration_milliseconds",
		Help:        "Time to filter, aggregate and build all three charts",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.emptySelections = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "empty_selections_total",
		Help:        "Dashboards built from a selector that matched no records",
		ConstLabels: labels,
	})

	m.chartRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_renders_total",
		Help:        "PNG chart renders by chart and outcome",
		ConstLabels: labels,
	}, []string{"chart", "status"})

	m.chartRenderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_render_duration_milliseconds",
		Help:        "PNG chart render duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"chart"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"type", "severity"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by HTTP endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Current heap allocation in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// SetDataset records the size of the loaded dataset.
func (m *Manager) SetDataset(records, sports int) {
	m.datasetRecords.Set(float64(records))
	m.datasetSports.Set(float64(sports))
}

// RecordSelectorChange counts a selector transition of the given kind.
func (m *Manager) RecordSelectorChange(kind string) {
	m.selectorChanges.WithLabelValues(kind).Inc()
}

// RecordPipeline records one dashboard build.
func (m *Manager) RecordPipeline(durationMs float64, empty bool) {
	m.pipelineDuration.Observe(durationMs)
	if empty {
		m.emptySelections.Inc()
	}
}

// RecordChartRender records one PNG render.
func (m *Manager) RecordChartRender(chart, status string, durationMs float64) {
	m.chartRenders.WithLabelValues(chart, status).Inc()
	m.chartRenderDuration.WithLabelValues(chart).Observe(durationMs)
}

// RecordHTTPRequest records one request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error by type and severity, and by endpoint when
// endpoint is not empty.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	m.errorsByType.WithLabelValues(errorType, severity).Inc()
	if endpoint != "" {
		m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystem records process-level gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordGCPause records an average GC pause in milliseconds.
func (m *Manager) RecordGCPause(pauseMs float64) {
	m.systemGCPauseTime.Observe(pauseMs)
}

// Package-level helpers delegate to the global manager.

// SetDataset records the size of the loaded dataset.
func SetDataset(records, sports int) { globalManager.SetDataset(records, sports) }

// RecordSelectorChange counts a selector transition of the given kind.
func RecordSelectorChange(kind string) { globalManager.RecordSelectorChange(kind) }

// RecordPipeline records one dashboard build.
func RecordPipeline(durationMs float64, empty bool) { globalManager.RecordPipeline(durationMs, empty) }

// RecordChartRender records one PNG render.
func RecordChartRender(chart, status string, durationMs float64) {
	globalManager.RecordChartRender(chart, status, durationMs)
}

// RecordHTTPRequest records one request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError records an error by type and severity.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// UpdateSystem records process-level gauges.
func UpdateSystem(memBytes uint64, goroutines int) { globalManager.UpdateSystem(memBytes, goroutines) }

// RecordGCPause records an average GC pause in milliseconds.
func RecordGCPause(pauseMs float64) { globalManager.RecordGCPause(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
