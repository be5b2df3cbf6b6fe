package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/mappers"
)

// WebhookEventRepository stores the webhook audit trail. Writes never join
// the caller's transaction so a rolled back event is still recorded.
type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

func (r *WebhookEventRepository) Record(ctx context.Context, rec *usecases.WebhookRecord) error {
	model := mappers.WebhookRecordToModel(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record webhook event: %w", err)
	}
	return nil
}
