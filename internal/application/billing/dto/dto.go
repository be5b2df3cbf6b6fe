package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
)

// The billing endpoints answer with camelCase keys; the web client reads
// them as-is.

// SubscriptionDTO is the client view of a subscription.
type SubscriptionDTO struct {
	SubscriptionID string     `json:"subscriptionId"`
	Status         string     `json:"status"`
	VariantID      string     `json:"variantId"`
	ProductID      string     `json:"productId,omitempty"`
	VariantName    string     `json:"variantName,omitempty"`
	RenewsAt       *time.Time `json:"renewsAt"`
	EndsAt         *time.Time `json:"endsAt"`
	TrialEndsAt    *time.Time `json:"trialEndsAt,omitempty"`
}

func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		SubscriptionID: sub.SubscriptionID(),
		Status:         sub.Status().String(),
		VariantID:      sub.VariantID(),
		ProductID:      sub.ProductID(),
		VariantName:    sub.VariantName(),
		RenewsAt:       sub.RenewsAt(),
		EndsAt:         sub.EndsAt(),
		TrialEndsAt:    sub.TrialEndsAt(),
	}
}

type PortalDTO struct {
	PortalURL string     `json:"portalUrl"`
	Status    string     `json:"status"`
	VariantID string     `json:"variantId"`
	RenewsAt  *time.Time `json:"renewsAt"`
	EndsAt    *time.Time `json:"endsAt"`
}

// ProrationDTO carries money as two-decimal strings so clients never see
// float rounding.
type ProrationDTO struct {
	CurrentVariantID string `json:"currentVariantId"`
	NewVariantID     string `json:"newVariantId"`
	Charge           string `json:"charge"`
	Credit           string `json:"credit"`
	NewPlanCost      string `json:"newPlanCost"`
	DaysRemaining    int    `json:"daysRemaining"`
	IsUpgrade        bool   `json:"isUpgrade"`
}

func ToProrationDTO(currentVariantID, newVariantID string, r subscription.ProrationResult) *ProrationDTO {
	return &ProrationDTO{
		CurrentVariantID: currentVariantID,
		NewVariantID:     newVariantID,
		Charge:           money(r.Charge),
		Credit:           money(r.Credit),
		NewPlanCost:      money(r.NewPlanCost),
		DaysRemaining:    r.DaysRemaining,
		IsUpgrade:        r.IsUpgrade,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
