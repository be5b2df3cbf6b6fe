package lemonsqueezy

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
)

const (
	resourceSubscriptions        = "subscriptions"
	resourceSubscriptionInvoices = "subscription-invoices"
	resourceOrders               = "orders"
)

// userIDKeys are the custom data keys checked for the application user, in order.
var userIDKeys = []string{"user_id", "userId"}

type webhookMeta struct {
	EventName  string         `json:"event_name"`
	CustomData map[string]any `json:"custom_data"`
	UserID     flexID         `json:"user_id"`
	TestMode   bool           `json:"test_mode"`
}

type webhookEnvelope struct {
	Meta webhookMeta `json:"meta"`
	Data struct {
		Type       string          `json:"type"`
		ID         flexID          `json:"id"`
		Attributes json.RawMessage `json:"attributes"`
	} `json:"data"`
}

type invoiceAttributes struct {
	SubscriptionID flexID         `json:"subscription_id"`
	Status         string         `json:"status"`
	CustomData     map[string]any `json:"custom_data"`
}

type orderAttributes struct {
	Status     string         `json:"status"`
	Total      int64          `json:"total"`
	Currency   string         `json:"currency"`
	CreatedAt  time.Time      `json:"created_at"`
	CustomData map[string]any `json:"custom_data"`
}

// WebhookParser verifies and normalizes Lemon Squeezy webhook deliveries.
type WebhookParser struct {
	secret string
}

// Ensure WebhookParser implements WebhookVerifier
var _ billingprovider.WebhookVerifier = (*WebhookParser)(nil)

func NewWebhookParser(secret string) *WebhookParser {
	return &WebhookParser{secret: secret}
}

func (p *WebhookParser) Verify(rawBody []byte, signature string) error {
	return VerifySignature(p.secret, rawBody, signature)
}

// Parse turns the provider envelope into a WebhookEvent. The user ID is taken
// from meta.custom_data, then data.attributes.custom_data, then meta.user_id.
func (p *WebhookParser) Parse(rawBody []byte) (*billingprovider.WebhookEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return nil, fmt.Errorf("failed to decode webhook envelope: %w", err)
	}
	if env.Meta.EventName == "" {
		return nil, fmt.Errorf("webhook envelope has no event name")
	}

	event := &billingprovider.WebhookEvent{
		Name:     billingprovider.EventName(env.Meta.EventName),
		TestMode: env.Meta.TestMode,
	}

	var attributeCustomData map[string]any
	switch env.Data.Type {
	case resourceSubscriptions:
		var attrs subscriptionAttributes
		if err := decodeAttributes(env.Data.Attributes, &attrs); err != nil {
			return nil, err
		}
		state := attrs.providerState()
		event.SubscriptionID = string(env.Data.ID)
		event.Subscription = &state
		attributeCustomData = attrs.CustomData

	case resourceSubscriptionInvoices:
		var attrs invoiceAttributes
		if err := decodeAttributes(env.Data.Attributes, &attrs); err != nil {
			return nil, err
		}
		event.SubscriptionID = string(attrs.SubscriptionID)
		attributeCustomData = attrs.CustomData

	case resourceOrders:
		var attrs orderAttributes
		if err := decodeAttributes(env.Data.Attributes, &attrs); err != nil {
			return nil, err
		}
		event.Order = &billingprovider.OrderDetail{
			OrderID:   string(env.Data.ID),
			Status:    attrs.Status,
			Total:     attrs.Total,
			Currency:  strings.ToUpper(attrs.Currency),
			CreatedAt: attrs.CreatedAt,
		}
		attributeCustomData = attrs.CustomData
	}

	event.UserID = firstNonEmpty(
		userIDFrom(env.Meta.CustomData),
		userIDFrom(attributeCustomData),
		string(env.Meta.UserID),
	)
	return event, nil
}

func decodeAttributes(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode webhook attributes: %w", err)
	}
	return nil
}

func userIDFrom(customData map[string]any) string {
	for _, key := range userIDKeys {
		if v, ok := customData[key]; ok {
			switch id := v.(type) {
			case string:
				if id = strings.TrimSpace(id); id != "" {
					return id
				}
			case float64:
				return fmt.Sprintf("%.0f", id)
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
