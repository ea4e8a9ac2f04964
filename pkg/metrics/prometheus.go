// Package metrics provides Prometheus metrics for the scout style service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the scout service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - predictions and similarity lookups
	predictions       *prometheus.CounterVec
	similarityQueries prometheus.Counter
	archetypeLists    prometheus.Counter
	predictLatency    prometheus.Histogram
	similarityLatency prometheus.Histogram

	// Model Snapshot Metrics - the loaded artifact state
	corpusSize       prometheus.Gauge
	clusterCount     prometheus.Gauge
	snapshotLoadUnix prometheus.Gauge
	snapshotReloads  prometheus.Counter

	// Quality Metrics - failures by kind
	validationFailures prometheus.Counter
	artifactMismatches prometheus.Counter
	lookupMisses       prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scout",
		subsystem:        "style",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
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

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of style predictions, labeled by predicted archetype",
	}, []string{"archetype"})

	m.similarityQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_queries_total",
		Help:      "Total number of nearest-neighbor similarity queries",
	})

	m.archetypeLists = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "archetype_lists_total",
		Help:      "Total number of archetype listing requests",
	})

	m.predictLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predict_latency_milliseconds",
		Help:      "Histogram of extract+normalize+predict latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.similarityLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_latency_milliseconds",
		Help:      "Histogram of corpus scan latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.corpusSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_size",
		Help:      "Number of players in the loaded similarity corpus",
	})

	m.clusterCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cluster_count",
		Help:      "Number of clusters in the loaded model",
	})

	m.snapshotLoadUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_loaded_timestamp_seconds",
		Help:      "Unix time at which the current artifact snapshot was loaded",
	})

	m.snapshotReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_reloads_total",
		Help:      "Total number of artifact snapshot reloads since process start",
	})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total number of requests rejected for missing or malformed attributes",
	})

	m.artifactMismatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_mismatch_total",
		Help:      "Total number of dimension mismatches against loaded artifacts (stale or corrupt model)",
	})

	m.lookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_misses_total",
		Help:      "Total number of player or archetype lookups that found nothing",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Errors by type and severity",
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordPrediction increments the prediction counter for an archetype.
func RecordPrediction(archetype string) {
	globalManager.predictions.WithLabelValues(archetype).Inc()
}

// RecordSimilarityQuery increments the similarity query counter.
func RecordSimilarityQuery() {
	globalManager.similarityQueries.Inc()
}

// RecordArchetypeList increments the archetype listing counter.
func RecordArchetypeList() {
	globalManager.archetypeLists.Inc()
}

// RecordPredictLatency records prediction latency in milliseconds.
func RecordPredictLatency(latencyMs float64) {
	globalManager.predictLatency.Observe(latencyMs)
}

// RecordSimilarityLatency records corpus scan latency in milliseconds.
func RecordSimilarityLatency(latencyMs float64) {
	globalManager.similarityLatency.Observe(latencyMs)
}

// UpdateCorpusSize updates the loaded corpus size gauge.
func UpdateCorpusSize(size int) {
	globalManager.corpusSize.Set(float64(size))
}

// UpdateClusterCount updates the loaded cluster count gauge.
func UpdateClusterCount(k int) {
	globalManager.clusterCount.Set(float64(k))
}

// UpdateSnapshotLoadedAt records when the current snapshot was loaded.
func UpdateSnapshotLoadedAt(t time.Time) {
	globalManager.snapshotLoadUnix.Set(float64(t.Unix()))
}

// RecordSnapshotReload increments the snapshot reload counter.
func RecordSnapshotReload() {
	globalManager.snapshotReloads.Inc()
}

// RecordValidationFailure increments the validation failure counter.
func RecordValidationFailure() {
	globalManager.validationFailures.Inc()
}

// RecordArtifactMismatch increments the dimension mismatch counter.
func RecordArtifactMismatch() {
	globalManager.artifactMismatches.Inc()
}

// RecordLookupMiss increments the lookup miss counter.
func RecordLookupMiss() {
	globalManager.lookupMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
