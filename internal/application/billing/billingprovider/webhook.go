package billingprovider

import (
	"time"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
)

// EventName is a provider webhook event type.
type EventName string

const (
	EventOrderCreated               EventName = "order_created"
	EventSubscriptionCreated        EventName = "subscription_created"
	EventSubscriptionUpdated        EventName = "subscription_updated"
	EventSubscriptionCancelled      EventName = "subscription_cancelled"
	EventSubscriptionResumed        EventName = "subscription_resumed"
	EventSubscriptionExpired        EventName = "subscription_expired"
	EventSubscriptionPaused         EventName = "subscription_paused"
	EventSubscriptionUnpaused       EventName = "subscription_unpaused"
	EventSubscriptionPaymentSuccess EventName = "subscription_payment_success"
	EventSubscriptionPaymentFailed  EventName = "subscription_payment_failed"
)

// WebhookEvent is the canonical form of a provider webhook, independent of
// the provider's envelope layout.
type WebhookEvent struct {
	Name EventName
	// UserID is the application user the event belongs to, empty when the
	// payload did not carry one.
	UserID string
	// SubscriptionID is set for subscription events and for subscription
	// invoice events.
	SubscriptionID string
	// Subscription holds the subscription attributes for subscription_* events.
	Subscription *subscription.ProviderState
	// Order is set for order_created.
	Order    *OrderDetail
	TestMode bool
}

type OrderDetail struct {
	OrderID   string
	Status    string
	Total     int64
	Currency  string
	CreatedAt time.Time
}

// WebhookVerifier authenticates and decodes webhook deliveries. Verify must
// be called, and succeed, before Parse.
type WebhookVerifier interface {
	Verify(rawBody []byte, signature string) error
	Parse(rawBody []byte) (*WebhookEvent, error)
}
