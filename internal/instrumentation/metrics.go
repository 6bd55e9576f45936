package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the analytics service.
type Metrics struct {
	SummaryLatencyMs prometheus.Histogram
	SummaryRequests  *prometheus.CounterVec
	DrilldownTotal   *prometheus.CounterVec

	SnapshotOrders      prometheus.Gauge
	SnapshotVersion     prometheus.Gauge
	SnapshotRegenerated prometheus.Counter

	ErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SummaryLatencyMs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "supplydash_summary_latency_ms",
			Help:    "Time to assemble an analytics summary in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),

		// outcome is hit, miss or bypass (no cache configured)
		SummaryRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplydash_summary_requests_total",
			Help: "Total number of summary requests by cache outcome",
		}, []string{"outcome"}),

		DrilldownTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplydash_drilldown_requests_total",
			Help: "Total number of drilldown requests by entity",
		}, []string{"entity"}),

		SnapshotOrders: factory.NewGauge(prometheus.GaugeOpts{
			Name: "supplydash_snapshot_orders",
			Help: "Number of orders in the current snapshot",
		}),

		SnapshotVersion: factory.NewGauge(prometheus.GaugeOpts{
			Name: "supplydash_snapshot_version",
			Help: "Version of the current snapshot",
		}),

		SnapshotRegenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "supplydash_snapshot_regenerations_total",
			Help: "Total number of wholesale snapshot replacements",
		}),

		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplydash_errors_total",
			Help: "Total number of errors by component and type",
		}, []string{"component", "error_type"}),
	}
}

// RecordSummary records the latency and cache outcome of a summary request.
func (m *Metrics) RecordSummary(latencyMs float64, outcome string) {
	m.SummaryLatencyMs.Observe(latencyMs)
	m.SummaryRequests.WithLabelValues(outcome).Inc()
}

// RecordDrilldown increments the drilldown counter for entity.
func (m *Metrics) RecordDrilldown(entity string) {
	m.DrilldownTotal.WithLabelValues(entity).Inc()
}

// RecordSnapshot records the size and version of a newly installed snapshot.
func (m *Metrics) RecordSnapshot(version uint64, orders int) {
	m.SnapshotOrders.Set(float64(orders))
	m.SnapshotVersion.Set(float64(version))
	m.SnapshotRegenerated.Inc()
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(component, errorType string) {
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
