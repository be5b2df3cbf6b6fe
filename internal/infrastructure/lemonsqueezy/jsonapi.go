package lemonsqueezy

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	vo "github.com/masterly-ai/masterly/internal/domain/subscription/valueobjects"
)

// flexID accepts identifiers sent either as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// numericID sends an ID as a JSON number when it looks like one.
func numericID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

type subscriptionURLs struct {
	CustomerPortal      string `json:"customer_portal"`
	UpdatePaymentMethod string `json:"update_payment_method"`
}

type subscriptionAttributes struct {
	Status      string           `json:"status"`
	VariantID   flexID           `json:"variant_id"`
	ProductID   flexID           `json:"product_id"`
	VariantName string           `json:"variant_name"`
	OrderID     flexID           `json:"order_id"`
	CustomerID  flexID           `json:"customer_id"`
	RenewsAt    *time.Time       `json:"renews_at"`
	EndsAt      *time.Time       `json:"ends_at"`
	TrialEndsAt *time.Time       `json:"trial_ends_at"`
	URLs        subscriptionURLs `json:"urls"`
	CustomData  map[string]any   `json:"custom_data"`
	TestMode    bool             `json:"test_mode"`
}

func (a subscriptionAttributes) providerState() subscription.ProviderState {
	status, _ := vo.ParseStatus(a.Status)
	return subscription.ProviderState{
		Status:      status,
		VariantID:   string(a.VariantID),
		ProductID:   string(a.ProductID),
		VariantName: a.VariantName,
		OrderID:     string(a.OrderID),
		CustomerID:  string(a.CustomerID),
		RenewsAt:    a.RenewsAt,
		EndsAt:      a.EndsAt,
		TrialEndsAt: a.TrialEndsAt,
	}
}

type subscriptionResource struct {
	Type       string                 `json:"type"`
	ID         flexID                 `json:"id"`
	Attributes subscriptionAttributes `json:"attributes"`
}

type subscriptionDocument struct {
	Data subscriptionResource `json:"data"`
}

func (d *subscriptionDocument) detail() *billingprovider.SubscriptionDetail {
	return &billingprovider.SubscriptionDetail{
		SubscriptionID:         string(d.Data.ID),
		ProviderState:          d.Data.Attributes.providerState(),
		CustomerPortalURL:      d.Data.Attributes.URLs.CustomerPortal,
		UpdatePaymentMethodURL: d.Data.Attributes.URLs.UpdatePaymentMethod,
	}
}

type checkoutDocument struct {
	Data struct {
		ID         flexID `json:"id"`
		Attributes struct {
			URL       string     `json:"url"`
			ExpiresAt *time.Time `json:"expires_at"`
		} `json:"attributes"`
	} `json:"data"`
}

type relationship struct {
	Data struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"data"`
}

func newRelationship(typ, id string) relationship {
	var r relationship
	r.Data.Type = typ
	r.Data.ID = id
	return r
}

type errorDocument struct {
	Message string `json:"message"`
	Errors  []struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
		Status string `json:"status"`
	} `json:"errors"`
}
