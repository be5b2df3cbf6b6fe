package usecases

import (
	"context"
	"time"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
)

// ChangePublisher fans out subscription changes to other processes.
type ChangePublisher interface {
	PublishChange(ctx context.Context, event *subscription.ChangedEvent) error
}

// BillingMetrics records webhook and provider call outcomes.
type BillingMetrics interface {
	ObserveWebhook(eventName, outcome string)
	ObserveProviderCall(operation, outcome string, duration time.Duration)
}

// WebhookRecord is the audit entry for one webhook delivery.
type WebhookRecord struct {
	DeliveryID     string
	EventName      string
	SubscriptionID string
	UserID         string
	Payload        []byte
	Outcome        string
	Error          string
	ReceivedAt     time.Time
}

// WebhookEventRecorder stores webhook deliveries for auditing and replay.
type WebhookEventRecorder interface {
	Record(ctx context.Context, rec *WebhookRecord) error
}

// Webhook outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeSkipped  = "skipped"
	OutcomeNotFound = "not_found"
	OutcomeIgnored  = "ignored"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)
