package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the allocation engine. A nil
// *Metrics is valid and records nothing, which keeps tests quiet.
type Metrics struct {
	AllocationsTotal      prometheus.Counter
	RoomsCreatedTotal     prometheus.Counter
	OccupantsRemovedTotal prometheus.Counter
	VersionConflictsTotal prometheus.Counter
	AllocationTime        prometheus.Histogram
	ErrorsCount           *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AllocationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "The total number of completed family allocation passes",
		}),
		RoomsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "The total number of rooms created by the allocator",
		}),
		OccupantsRemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "occupants_removed_total",
			Help:      "The total number of occupant slots cleared",
		}),
		VersionConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "version_conflicts_total",
			Help:      "The total number of room record saves lost to a concurrent writer",
		}),
		AllocationTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocation_time_seconds",
			Help:      "Time taken to allocate one family",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// AllocationDone records one completed allocation pass.
func (m *Metrics) AllocationDone(d time.Duration) {
	if m == nil {
		return
	}
	m.AllocationsTotal.Inc()
	m.AllocationTime.Observe(d.Seconds())
}

// RoomCreated records one room creation.
func (m *Metrics) RoomCreated() {
	if m == nil {
		return
	}
	m.RoomsCreatedTotal.Inc()
}

// OccupantsRemoved records n cleared occupant slots.
func (m *Metrics) OccupantsRemoved(n int) {
	if m == nil {
		return
	}
	m.OccupantsRemovedTotal.Add(float64(n))
}

// VersionConflict records one save rejected by the optimistic version check.
func (m *Metrics) VersionConflict() {
	if m == nil {
		return
	}
	m.VersionConflictsTotal.Inc()
}

// Error records one error for the given operation label.
func (m *Metrics) Error(operation string) {
	if m == nil {
		return
	}
	m.ErrorsCount.WithLabelValues(operation).Inc()
}
