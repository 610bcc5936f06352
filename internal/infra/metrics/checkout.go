package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		checkoutIntentsTotal,
		paperRequestDuration,
	)
}

var (
	checkoutIntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_intents_total",
			Help: "Checkout link intent requests by terminal outcome.",
		},
		[]string{"outcome"},
	)

	paperRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paper_request_duration_seconds",
			Help:    "Latency of outbound Paper checkout-link-intent calls.",
			Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5, 10},
		},
		[]string{"status"},
	)
)

// IncCheckoutIntent counts a terminal outcome (fulfilled, validation, provider_rejected, ...).
func IncCheckoutIntent(outcome string) {
	checkoutIntentsTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObservePaperRequest(status string, d time.Duration) {
	paperRequestDuration.WithLabelValues(norm(status)).Observe(d.Seconds())
}
