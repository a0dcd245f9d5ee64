package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for completed tasks.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomePanic   = "panic"
)

// Metrics groups the collectors exported by carrier.
type Metrics struct {
	SessionsCreated prometheus.Counter
	TasksSubmitted  prometheus.Counter
	TasksCompleted  *prometheus.CounterVec
	TaskDuration    prometheus.Histogram
	PoolBacklog     prometheus.Gauge
	Propagations    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrier_sessions_created_total",
			Help: "Total number of sessions constructed by the registry",
		}),
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrier_tasks_submitted_total",
			Help: "Total number of units of work accepted by the pool",
		}),
		TasksCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrier_tasks_completed_total",
			Help: "Total number of units of work finished, by outcome",
		}, []string{"outcome"}), // outcome = "success", "error", "panic"
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "carrier_task_duration_seconds",
			Help:    "Execution time of units of work in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		PoolBacklog: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "carrier_pool_backlog",
			Help: "Current number of queued units of work",
		}),
		Propagations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrier_context_propagations_total",
			Help: "Total number of context values installed on executing threads",
		}, []string{"carrier"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.SessionsCreated,
			m.TasksSubmitted,
			m.TasksCompleted,
			m.TaskDuration,
			m.PoolBacklog,
			m.Propagations,
		)
	}
	return m
}

// SessionCreated counts a newly constructed session.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

// TaskSubmitted counts an accepted unit of work.
func (m *Metrics) TaskSubmitted() {
	if m == nil {
		return
	}
	m.TasksSubmitted.Inc()
}

// TaskCompleted records the outcome and duration of a unit of work.
func (m *Metrics) TaskCompleted(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.TasksCompleted.WithLabelValues(outcome).Inc()
	m.TaskDuration.Observe(took.Seconds())
}

// Backlog sets the current queue depth.
func (m *Metrics) Backlog(n int) {
	if m == nil {
		return
	}
	m.PoolBacklog.Set(float64(n))
}

// Propagated counts a value installed by the named carrier.
func (m *Metrics) Propagated(carrier string) {
	if m == nil {
		return
	}
	m.Propagations.WithLabelValues(carrier).Inc()
}
