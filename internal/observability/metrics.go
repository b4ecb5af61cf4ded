package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the pipeline's observable side effects: per-stage row flow,
// documented drops (unmatched joins, quarantined rows), and stage latency.
type Metrics struct {
	RowsProcessed *prometheus.CounterVec
	RowsDropped   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RowsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailpulse",
			Name:      "rows_processed_total",
			Help:      "Rows emitted by each pipeline stage.",
		}, []string{"stage"}),
		RowsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailpulse",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped by a stage, by reason.",
		}, []string{"stage", "reason"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "retailpulse",
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailpulse",
			Name:      "runs_total",
			Help:      "Pipeline runs by terminal status.",
		}, []string{"status"}),
	}
}
