package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace          string
	subsystem          string
	histogramBuckets   []float64
	temperatureBuckets []float64
	customLabels       map[string]string
	registry           prometheus.Registerer

	// Planning
	plansComputed       *prometheus.CounterVec
	suggestionsComputed *prometheus.CounterVec
	effectiveTemp       *prometheus.HistogramVec
	adjustmentsApplied  *prometheus.CounterVec
	planningLatency     prometheus.Histogram
	profilesNormalized  prometheus.Counter

	// Batches
	batchesTotal  prometheus.Counter
	batchSize     prometheus.Histogram
	batchRejected *prometheus.CounterVec

	// Queue
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:          "kitcast",
		subsystem:          "planner",
		histogramBuckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		temperatureBuckets: prometheus.LinearBuckets(-20, 10, 13),
		customLabels:       make(map[string]string),
		registry:           prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.plansComputed = auto.NewCounterVec(
		m.counterOpts("plans_computed_total", "Wear plans computed by sport and confidence"),
		[]string{"sport", "confidence"},
	)
	m.suggestionsComputed = auto.NewCounterVec(
		m.counterOpts("suggestions_computed_total", "Gear suggestions computed by sport"),
		[]string{"sport"},
	)
	m.effectiveTemp = auto.NewHistogramVec(
		m.histogramOpts("effective_temperature_fahrenheit", "Distribution of effective temperatures", m.temperatureBuckets),
		[]string{"sport"},
	)
	m.adjustmentsApplied = auto.NewCounterVec(
		m.counterOpts("adjustments_applied_total", "Effective temperature adjustments by factor"),
		[]string{"factor"},
	)
	m.planningLatency = auto.NewHistogram(
		m.histogramOpts("planning_latency_milliseconds", "Time to compute one plan in milliseconds", m.histogramBuckets),
	)
	m.profilesNormalized = auto.NewCounter(
		m.counterOpts("profiles_normalized_total", "Comfort profiles passed through the normalizer"),
	)

	m.batchesTotal = auto.NewCounter(
		m.counterOpts("batches_total", "Batch planning requests accepted"),
	)
	m.batchSize = auto.NewHistogram(
		m.histogramOpts("batch_size", "Scenarios per batch request", prometheus.ExponentialBuckets(1, 2, 10)),
	)
	m.batchRejected = auto.NewCounterVec(
		m.counterOpts("batches_rejected_total", "Batch requests rejected by reason"),
		[]string{"reason"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued plan jobs"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum number of queued plan jobs"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Plan jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Plan jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Plan jobs rejected by the queue"))
	m.queueProcessingLatency = auto.NewHistogram(
		m.histogramOpts("queue_wait_milliseconds", "Time a job waited in the queue in milliseconds", m.histogramBuckets),
	)

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of batch workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Worker time per job in milliseconds", m.histogramBuckets),
	)
	m.workerErrorRate = auto.NewCounter(m.counterOpts("worker_errors_total", "Jobs a worker could not deliver"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "HTTP requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause in milliseconds", m.histogramBuckets),
	)
}

// Planning Metrics Functions.

// RecordPlan counts a computed plan and observes its effective temperature.
func RecordPlan(sport, confidence string, effectiveTemp float64) {
	globalManager.plansComputed.WithLabelValues(sport, confidence).Inc()
	globalManager.effectiveTemp.WithLabelValues(sport).Observe(effectiveTemp)
}

// RecordSuggestion counts a computed gear suggestion.
func RecordSuggestion(sport string) {
	globalManager.suggestionsComputed.WithLabelValues(sport).Inc()
}

// RecordAdjustment counts one applied effective temperature factor.
func RecordAdjustment(factor string) {
	globalManager.adjustmentsApplied.WithLabelValues(factor).Inc()
}

// RecordPlanningLatency records the time spent computing a plan.
func RecordPlanningLatency(latencyMs float64) {
	globalManager.planningLatency.Observe(latencyMs)
}

// RecordProfileNormalized counts a profile passed through the normalizer.
func RecordProfileNormalized() {
	globalManager.profilesNormalized.Inc()
}

// Batch Metrics Functions.

// RecordBatch counts an accepted batch and observes its size.
func RecordBatch(size int) {
	globalManager.batchesTotal.Inc()
	globalManager.batchSize.Observe(float64(size))
}

// RecordBatchRejected counts a batch rejected for reason.
func RecordBatchRejected(reason string) {
	globalManager.batchRejected.WithLabelValues(reason).Inc()
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueWait records how long a job waited before a worker took it.
func RecordQueueWait(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the number of batch workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
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
