// Package metrics provides Prometheus metrics for the teamup formation engine.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for teamup.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Formation metrics
	formationRuns        *prometheus.CounterVec
	formationErrors      *prometheus.CounterVec
	formationDuration    *prometheus.HistogramVec
	teamsFormed          prometheus.Gauge
	participantsAssigned prometheus.Counter
	leaderRepairs        prometheus.Counter
	parallelGroupings    prometheus.Counter

	// Worker pool metrics
	poolWorkers     prometheus.Gauge
	poolTasks       prometheus.Counter
	poolTasksInline prometheus.Counter
	poolTaskLatency prometheus.Histogram

	// Queue metrics
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueEnqueued prometheus.Counter
	queueRejected *prometheus.CounterVec

	// Roster and CSV metrics
	rosterSize       prometheus.Gauge
	rosterDuplicates prometheus.Counter
	csvRowsRead      *prometheus.CounterVec
	csvRowsSkipped   prometheus.Counter
	csvRowsWritten   *prometheus.CounterVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamup",
		subsystem:        "formation",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}

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
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.formationRuns = auto.NewCounterVec(
		m.counterOpts("runs_total", "Successful formation runs by algorithm"),
		[]string{"algorithm"},
	)
	m.formationErrors = auto.NewCounterVec(
		m.counterOpts("errors_total", "Rejected formation runs by algorithm and reason"),
		[]string{"algorithm", "reason"},
	)
	m.formationDuration = auto.NewHistogramVec(
		m.histogramOpts("duration_milliseconds", "Formation run duration in milliseconds"),
		[]string{"algorithm"},
	)
	m.teamsFormed = auto.NewGauge(m.gaugeOpts("teams", "Number of teams produced by the latest run"))
	m.participantsAssigned = auto.NewCounter(m.counterOpts("participants_assigned_total", "Participants placed into teams"))
	m.leaderRepairs = auto.NewCounter(m.counterOpts("leader_repairs_total", "Swaps performed by the leader repair pass"))
	m.parallelGroupings = auto.NewCounter(m.counterOpts("parallel_groupings_total", "Groupings computed on the worker pool"))

	m.poolWorkers = auto.NewGauge(m.gaugeOpts("pool_workers", "Workers running in the grouping pool"))
	m.poolTasks = auto.NewCounter(m.counterOpts("pool_tasks_total", "Tasks executed by pool workers"))
	m.poolTasksInline = auto.NewCounter(m.counterOpts("pool_tasks_inline_total", "Tasks run on the caller because the queue refused them"))
	m.poolTaskLatency = auto.NewHistogram(m.histogramOpts("pool_task_latency_milliseconds", "Pool task execution latency in milliseconds"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Tasks waiting in the pool queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Capacity of the pool queue"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Tasks accepted by the pool queue"))
	m.queueRejected = auto.NewCounterVec(
		m.counterOpts("queue_rejected_total", "Tasks refused by the pool queue"),
		[]string{"reason"},
	)

	m.rosterSize = auto.NewGauge(m.gaugeOpts("roster_size", "Participants currently held in the roster"))
	m.rosterDuplicates = auto.NewCounter(m.counterOpts("roster_duplicates_total", "Participants rejected for a duplicate email"))
	m.csvRowsRead = auto.NewCounterVec(
		m.counterOpts("csv_rows_read_total", "CSV rows accepted on read"),
		[]string{"kind"},
	)
	m.csvRowsSkipped = auto.NewCounter(m.counterOpts("csv_rows_skipped_total", "Participant CSV rows skipped as invalid"))
	m.csvRowsWritten = auto.NewCounterVec(
		m.counterOpts("csv_rows_written_total", "CSV rows written"),
		[]string{"kind"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("component_errors_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// Formation Metrics Functions.

// RecordFormationRun records a successful run and its duration.
func RecordFormationRun(algorithm string, latencyMs float64) {
	globalManager.formationRuns.WithLabelValues(algorithm).Inc()
	globalManager.formationDuration.WithLabelValues(algorithm).Observe(latencyMs)
}

// RecordFormationError records a rejected run.
func RecordFormationError(algorithm, reason string) {
	globalManager.formationErrors.WithLabelValues(algorithm, reason).Inc()
}

// UpdateTeamsFormed sets the number of teams in the latest run.
func UpdateTeamsFormed(count int) {
	globalManager.teamsFormed.Set(float64(count))
}

// RecordParticipantsAssigned adds n placed participants.
func RecordParticipantsAssigned(n int) {
	globalManager.participantsAssigned.Add(float64(n))
}

// RecordLeaderRepair increments the leader repair counter.
func RecordLeaderRepair() {
	globalManager.leaderRepairs.Inc()
}

// RecordParallelGrouping increments the parallel grouping counter.
func RecordParallelGrouping() {
	globalManager.parallelGroupings.Inc()
}

// Worker Pool Metrics Functions.

// UpdatePoolWorkers sets the number of running pool workers.
func UpdatePoolWorkers(count int) {
	globalManager.poolWorkers.Set(float64(count))
}

// RecordPoolTask records a task executed by a worker.
func RecordPoolTask(latencyMs float64) {
	globalManager.poolTasks.Inc()
	globalManager.poolTaskLatency.Observe(latencyMs)
}

// RecordPoolTaskInline records a task run on the submitting goroutine.
func RecordPoolTaskInline() {
	globalManager.poolTasksInline.Inc()
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

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueRejected records a refused enqueue.
func RecordQueueRejected(reason string) {
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// Roster and CSV Metrics Functions.

// UpdateRosterSize sets the current roster size.
func UpdateRosterSize(size int) {
	globalManager.rosterSize.Set(float64(size))
}

// RecordRosterDuplicate increments the duplicate counter.
func RecordRosterDuplicate() {
	globalManager.rosterDuplicates.Inc()
}

// RecordCSVRowsRead adds n rows read for kind ("participants").
func RecordCSVRowsRead(kind string, n int) {
	globalManager.csvRowsRead.WithLabelValues(kind).Add(float64(n))
}

// RecordCSVRowSkipped increments the skipped row counter.
func RecordCSVRowSkipped() {
	globalManager.csvRowsSkipped.Inc()
}

// RecordCSVRowsWritten adds n rows written for kind ("participants" or "teams").
func RecordCSVRowsWritten(kind string, n int) {
	globalManager.csvRowsWritten.WithLabelValues(kind).Add(float64(n))
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the Prometheus text format, suitable
// for a node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
