package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the building/unit registry.
type Metrics struct {
	BuildingsCreated   prometheus.Counter
	UnitsCreated       prometheus.Counter
	UnitsUpdated       prometheus.Counter
	CreateUnitDuration prometheus.Histogram
}

// New registers the registry metrics with reg. Pass prometheus.NewRegistry()
// in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BuildingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "unitbridge_buildings_created_total",
			Help: "Total number of building bridges created",
		}),
		UnitsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "unitbridge_units_created_total",
			Help: "Total number of unit bridges created",
		}),
		UnitsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "unitbridge_units_updated_total",
			Help: "Total number of unit bridge updates",
		}),
		CreateUnitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unitbridge_create_unit_duration_seconds",
			Help:    "Duration of CreateUnit operations including implicit building creation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementBuildingsCreated() {
	m.BuildingsCreated.Inc()
}

func (m *Metrics) IncrementUnitsCreated() {
	m.UnitsCreated.Inc()
}

func (m *Metrics) IncrementUnitsUpdated() {
	m.UnitsUpdated.Inc()
}

// ObserveCreateUnit records the duration of a CreateUnit operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreateUnit(start time.Time) {
	m.CreateUnitDuration.Observe(time.Since(start).Seconds())
}
