package migration

import (
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the billing tables for gorm AutoMigrate. Used for
// throwaway databases; real schemas come from the goose scripts.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SubscriptionModel{},
		&models.OrderModel{},
		&models.WebhookEventModel{},
	}
}
