package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the occupancy ledger. Outcomes are
// labelled so rejected assignments are visible next to successful ones.
type Metrics struct {
	Assignments      *prometheus.CounterVec
	Unassignments    *prometheus.CounterVec
	AssignDuration   prometheus.Histogram
	UnassignDuration prometheus.Histogram
}

var ledgerBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// New registers the ledger metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Assignments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unitbridge_occupancy_assignments_total",
			Help: "Occupancy assignment attempts by outcome",
		}, []string{"outcome"}),
		Unassignments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unitbridge_occupancy_unassignments_total",
			Help: "Occupancy unassignment attempts by outcome",
		}, []string{"outcome"}),
		AssignDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unitbridge_occupancy_assign_duration_seconds",
			Help:    "Duration of the assign transaction, including lock waits",
			Buckets: ledgerBuckets,
		}),
		UnassignDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unitbridge_occupancy_unassign_duration_seconds",
			Help:    "Duration of the unassign transaction, including lock waits",
			Buckets: ledgerBuckets,
		}),
	}
}

// ObserveAssign records one assignment attempt.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAssign(outcome string, start time.Time) {
	m.Assignments.WithLabelValues(outcome).Inc()
	m.AssignDuration.Observe(time.Since(start).Seconds())
}

// ObserveUnassign records one unassignment attempt.
func (m *Metrics) ObserveUnassign(outcome string, start time.Time) {
	m.Unassignments.WithLabelValues(outcome).Inc()
	m.UnassignDuration.Observe(time.Since(start).Seconds())
}
