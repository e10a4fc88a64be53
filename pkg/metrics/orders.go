package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics tracks order lifecycle outcomes.
type OrderMetrics struct {
	created     prometheus.Counter
	failed      *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully placed.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Checkout attempts rejected, by reason.",
	}, []string{"reason"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status transitions applied.",
	}, []string{"from", "to"})
	reg.MustRegister(created, failed, transitions)
	return &OrderMetrics{
		created:     created,
		failed:      failed,
		transitions: transitions,
	}
}

// IncCreated increments the placed-order counter.
func (o *OrderMetrics) IncCreated() {
	if o == nil || o.created == nil {
		return
	}
	o.created.Inc()
}

// IncFailed increments the failed-checkout counter for the given reason.
func (o *OrderMetrics) IncFailed(reason string) {
	if o == nil || o.failed == nil {
		return
	}
	o.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncTransition records a status change.
func (o *OrderMetrics) IncTransition(from, to string) {
	if o == nil || o.transitions == nil {
		return
	}
	o.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}
