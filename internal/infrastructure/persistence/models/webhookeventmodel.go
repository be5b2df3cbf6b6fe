package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/masterly-ai/masterly/internal/shared/constants"
)

// WebhookEventModel is the audit trail of received provider webhooks.
type WebhookEventModel struct {
	ID             uint    `gorm:"primarykey"`
	DeliveryID     string  `gorm:"uniqueIndex;not null;size:50"`
	EventName      string  `gorm:"not null;size:64;index:idx_webhook_event_name"`
	SubscriptionID string  `gorm:"size:64;index:idx_webhook_subscription"`
	UserID         string  `gorm:"size:36"`
	Outcome        string  `gorm:"not null;size:20"`
	Error          *string `gorm:"size:1000"`
	Payload        datatypes.JSON
	ReceivedAt     time.Time `gorm:"not null;index:idx_webhook_received_at"`
}

// TableName specifies the table name for GORM
func (WebhookEventModel) TableName() string {
	return constants.TableWebhookEvents
}
