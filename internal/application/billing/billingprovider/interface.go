package billingprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
)

// Provider is the billing provider's subscription API. Every call honors ctx
// cancellation.
type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionDetail, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (*SubscriptionDetail, error)
	ResumeSubscription(ctx context.Context, subscriptionID string) (*SubscriptionDetail, error)
	ChangePlan(ctx context.Context, req ChangePlanRequest) (*SubscriptionDetail, error)
}

// CheckoutRequest creates a hosted checkout for one variant. CustomData is
// echoed back in every webhook of the resulting order and subscription.
type CheckoutRequest struct {
	VariantID   string
	CustomData  map[string]any
	RedirectURL string
}

type CheckoutResponse struct {
	CheckoutURL string
	ExpiresAt   *time.Time
}

// ChangePlanRequest switches a subscription to another variant.
// InvoiceImmediately bills the difference right away instead of at renewal.
type ChangePlanRequest struct {
	SubscriptionID     string
	VariantID          string
	InvoiceImmediately bool
}

// SubscriptionDetail is the provider's current view of a subscription.
type SubscriptionDetail struct {
	SubscriptionID string
	subscription.ProviderState
	CustomerPortalURL      string
	UpdatePaymentMethodURL string
}

// APIError is a failed provider call. StatusCode is zero when no HTTP
// response was received.
type APIError struct {
	StatusCode int
	Detail     string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("billing provider error (status %d): %s", e.StatusCode, e.Detail)
	case e.Message != "":
		return fmt.Sprintf("billing provider error (status %d): %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("billing provider error (status %d): %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("billing provider error (status %d)", e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage returns the most specific message available: the error detail,
// then the generic message, then fallback.
func (e *APIError) UserMessage(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
