package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics methods tolerate a nil receiver so components can run without a
// registry (tests construct them with nil).
type Metrics struct {
	BusDeliveriesTotal      *prometheus.CounterVec
	BusRedeliveriesTotal    *prometheus.CounterVec
	BusDroppedTotal         *prometheus.CounterVec
	SagaTransitionsTotal    *prometheus.CounterVec
	SlotLockRejectionsTotal prometheus.Counter
	DeadlinesFiredTotal     *prometheus.CounterVec
	DeadlinesCancelledTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		BusDeliveriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_bus_deliveries_total",
			Help: "Total number of envelopes delivered to handlers",
		}, []string{"name"}),
		BusRedeliveriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_bus_redeliveries_total",
			Help: "Total number of envelope redelivery attempts after a handler error",
		}, []string{"name"}),
		BusDroppedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_bus_dropped_total",
			Help: "Total number of envelopes dropped after exhausting redelivery attempts",
		}, []string{"name"}),
		SagaTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_saga_transitions_total",
			Help: "Total number of saga state transitions",
		}, []string{"saga", "state"}),
		SlotLockRejectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booking_slot_lock_rejections_total",
			Help: "Total number of slot lock attempts rejected for exhausted capacity",
		}),
		DeadlinesFiredTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_deadlines_fired_total",
			Help: "Total number of deadline notifications fired",
		}, []string{"name"}),
		DeadlinesCancelledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_deadlines_cancelled_total",
			Help: "Total number of deadlines cancelled before firing",
		}, []string{"name"}),
	}
}

func (m *Metrics) IncrementBusDelivery(name string) {
	if m == nil {
		return
	}
	m.BusDeliveriesTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) IncrementBusRedelivery(name string) {
	if m == nil {
		return
	}
	m.BusRedeliveriesTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) IncrementBusDropped(name string) {
	if m == nil {
		return
	}
	m.BusDroppedTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) IncrementSagaTransition(saga, state string) {
	if m == nil {
		return
	}
	m.SagaTransitionsTotal.WithLabelValues(saga, state).Inc()
}

func (m *Metrics) IncrementSlotLockRejection() {
	if m == nil {
		return
	}
	m.SlotLockRejectionsTotal.Inc()
}

func (m *Metrics) IncrementDeadlineFired(name string) {
	if m == nil {
		return
	}
	m.DeadlinesFiredTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) IncrementDeadlineCancelled(name string) {
	if m == nil {
		return
	}
	m.DeadlinesCancelledTotal.WithLabelValues(name).Inc()
}
