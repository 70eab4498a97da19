package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks sales committed at the register.
type CheckoutMetrics struct {
	orders   *prometheus.CounterVec
	revenue  *prometheus.CounterVec
	duration prometheus.Histogram
	prints   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Orders committed, by payment method.",
	}, []string{"payment_method"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_revenue_rupiah_total",
		Help: "Gross revenue in rupiah, by payment method.",
	}, []string{"payment_method"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout requests in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	prints := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipt_prints_total",
		Help: "Receipt print attempts, by result.",
	}, []string{"result"})
	reg.MustRegister(orders, revenue, duration, prints)
	return &CheckoutMetrics{
		orders:   orders,
		revenue:  revenue,
		duration: duration,
		prints:   prints,
	}
}

// RecordOrder counts a committed order and its gross total.
func (c *CheckoutMetrics) RecordOrder(paymentMethod string, total int64) {
	if c == nil || c.orders == nil {
		return
	}
	label := normalizeLabel(paymentMethod)
	c.orders.WithLabelValues(label).Inc()
	c.revenue.WithLabelValues(label).Add(float64(total))
}

// ObserveDuration records how long the checkout request took.
func (c *CheckoutMetrics) ObserveDuration(duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.Observe(duration.Seconds())
}

// RecordPrint counts a receipt print attempt with its outcome.
func (c *CheckoutMetrics) RecordPrint(ok bool) {
	if c == nil || c.prints == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	c.prints.WithLabelValues(result).Inc()
}
