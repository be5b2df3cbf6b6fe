package subscription

import "time"

// ChangeSource tells subscribers which path produced a change.
type ChangeSource string

const (
	ChangeSourceWebhook   ChangeSource = "webhook"
	ChangeSourceGateway   ChangeSource = "gateway"
	ChangeSourceReconcile ChangeSource = "reconcile"
)

// ChangedEvent is published after a local subscription write succeeds.
type ChangedEvent struct {
	SubscriptionID string       `json:"subscription_id"`
	UserID         string       `json:"user_id"`
	Status         string       `json:"status"`
	VariantID      string       `json:"variant_id"`
	RenewsAt       *time.Time   `json:"renews_at,omitempty"`
	EndsAt         *time.Time   `json:"ends_at,omitempty"`
	Source         ChangeSource `json:"source"`
	Reason         string       `json:"reason"`
	Timestamp      time.Time    `json:"timestamp"`
}

// NewChangedEvent snapshots sub after a write.
func NewChangedEvent(sub *Subscription, source ChangeSource, reason string, now time.Time) *ChangedEvent {
	return &ChangedEvent{
		SubscriptionID: sub.SubscriptionID(),
		UserID:         sub.UserID(),
		Status:         sub.Status().String(),
		VariantID:      sub.VariantID(),
		RenewsAt:       sub.RenewsAt(),
		EndsAt:         sub.EndsAt(),
		Source:         source,
		Reason:         reason,
		Timestamp:      now,
	}
}
