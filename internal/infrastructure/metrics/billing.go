package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
)

// BillingMetrics counts webhook deliveries and times provider calls.
type BillingMetrics struct {
	webhookEvents *prometheus.CounterVec
	providerCalls *prometheus.HistogramVec
}

var _ usecases.BillingMetrics = (*BillingMetrics)(nil)

func NewBillingMetrics(registry prometheus.Registerer) *BillingMetrics {
	webhookEvents := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Webhook deliveries by event name and outcome",
		},
		[]string{"event", "outcome"},
	)

	providerCalls := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Billing provider API call latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"operation", "outcome"},
	)

	return &BillingMetrics{
		webhookEvents: webhookEvents,
		providerCalls: providerCalls,
	}
}

func (m *BillingMetrics) ObserveWebhook(eventName, outcome string) {
	m.webhookEvents.WithLabelValues(eventName, outcome).Inc()
}

func (m *BillingMetrics) ObserveProviderCall(operation, outcome string, duration time.Duration) {
	m.providerCalls.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}
