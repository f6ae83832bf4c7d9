package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CheckoutMetrics holds Prometheus metrics for checkout-level observability.
type CheckoutMetrics struct {
	// Cart mutations
	ItemsReserved *prometheus.CounterVec
	ItemsReleased *prometheus.CounterVec
	CouponApplied *prometheus.CounterVec

	// Checkout funnel
	SummariesComputed  prometheus.Counter
	CheckoutsCompleted prometheus.Counter
	CheckoutsFailed    *prometheus.CounterVec

	// Order shape
	OrderValue     prometheus.Histogram
	OrderItemCount prometheus.Histogram
}

// NewCheckoutMetrics creates and registers all checkout metrics with reg.
func NewCheckoutMetrics(namespace string, reg prometheus.Registerer) *CheckoutMetrics {
	if namespace == "" {
		namespace = "skuld"
	}

	subsystem := "checkout"
	factory := promauto.With(reg)

	return &CheckoutMetrics{
		ItemsReserved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items_reserved_total",
				Help:      "Units of stock reserved through the checkout service",
			},
			[]string{"sku"},
		),
		ItemsReleased: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items_released_total",
				Help:      "Units of reserved stock released back to available",
			},
			[]string{"sku"},
		),
		CouponApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_applied_total",
				Help:      "Coupons successfully attached to a cart",
			},
			[]string{"code"},
		),
		SummariesComputed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "summaries_computed_total",
				Help:      "Order summaries computed",
			},
		),
		CheckoutsCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "completed_total",
				Help:      "Carts finalized successfully",
			},
		),
		CheckoutsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "failed_total",
				Help:      "Finalizations that surfaced an error",
			},
			[]string{"reason"},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Final order total per completed checkout",
				Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Total item quantity per completed checkout",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
		),
	}
}

// ReserveRecorded increments the reserved counter; nil-safe so the service
// can run without metrics wired.
func (m *CheckoutMetrics) ReserveRecorded(sku string, qty int) {
	if m == nil {
		return
	}
	m.ItemsReserved.WithLabelValues(sku).Add(float64(qty))
}

func (m *CheckoutMetrics) ReleaseRecorded(sku string, qty int) {
	if m == nil {
		return
	}
	m.ItemsReleased.WithLabelValues(sku).Add(float64(qty))
}

func (m *CheckoutMetrics) CouponRecorded(code string) {
	if m == nil {
		return
	}
	m.CouponApplied.WithLabelValues(code).Inc()
}

func (m *CheckoutMetrics) SummaryRecorded() {
	if m == nil {
		return
	}
	m.SummariesComputed.Inc()
}

func (m *CheckoutMetrics) CheckoutRecorded(total float64, itemCount int) {
	if m == nil {
		return
	}
	m.CheckoutsCompleted.Inc()
	m.OrderValue.Observe(total)
	m.OrderItemCount.Observe(float64(itemCount))
}

func (m *CheckoutMetrics) CheckoutFailedRecorded(reason string) {
	if m == nil {
		return
	}
	m.CheckoutsFailed.WithLabelValues(reason).Inc()
}
