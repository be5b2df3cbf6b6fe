package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/models"
	"github.com/masterly-ai/masterly/internal/shared/utils/logutil"
)

// Column sizes of webhook_events. Values come from the provider or from
// client custom data and are cut to fit so the audit row is still written.
const (
	webhookEventNameSize      = 64
	webhookSubscriptionIDSize = 64
	webhookUserIDSize         = 36
	webhookErrorSize          = 1000
)

// WebhookRecordToModel keeps the raw payload only when it is valid JSON, so
// the JSON column never rejects an audit row.
func WebhookRecordToModel(rec *usecases.WebhookRecord) *models.WebhookEventModel {
	model := &models.WebhookEventModel{
		DeliveryID:     rec.DeliveryID,
		EventName:      fitColumn(rec.EventName, webhookEventNameSize),
		SubscriptionID: fitColumn(rec.SubscriptionID, webhookSubscriptionIDSize),
		UserID:         fitColumn(rec.UserID, webhookUserIDSize),
		Outcome:        rec.Outcome,
		ReceivedAt:     rec.ReceivedAt,
	}
	if rec.Error != "" {
		errText := fitColumn(rec.Error, webhookErrorSize)
		model.Error = &errText
	}
	if len(rec.Payload) > 0 && json.Valid(rec.Payload) {
		model.Payload = datatypes.JSON(rec.Payload)
	}
	return model
}

// fitColumn cuts s to at most size bytes, including the "..." marker.
func fitColumn(s string, size int) string {
	if len(s) <= size {
		return s
	}
	return logutil.TruncateForLog(s, size-3)
}
