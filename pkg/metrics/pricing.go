package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records rate-matching and order placement metadata. The
// fallback counter exists so operators can spot pricing data-quality problems
// (a product being priced off an unrelated metal's rate).
type PricingMetrics struct {
	fallbacks     *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
	statusChanges *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewPricingMetrics registers the storefront metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_fallbacks_total",
		Help: "Rate matches resolved by the fallback-to-first-rate policy.",
	}, []string{"metal"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully placed at checkout.",
	})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Administrative order status overwrites.",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_pricing_duration_seconds",
		Help:    "Duration of batch catalog pricing runs.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(fallbacks, ordersPlaced, statusChanges, duration)
	return &PricingMetrics{
		fallbacks:     fallbacks,
		ordersPlaced:  ordersPlaced,
		statusChanges: statusChanges,
		duration:      duration,
	}
}

// IncRateFallback counts one fallback match for the given metal.
func (m *PricingMetrics) IncRateFallback(metal string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(metal)).Inc()
}

// IncOrderPlaced counts one successful checkout.
func (m *PricingMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// IncStatusChange counts one administrative status overwrite.
func (m *PricingMetrics) IncStatusChange(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

// ObservePricingDuration records one batch pricing run.
func (m *PricingMetrics) ObservePricingDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	return strings.ReplaceAll(value, " ", "_")
}
