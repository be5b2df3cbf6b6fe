package http

import (
	"gorm.io/gorm"

	"github.com/masterly-ai/masterly/internal/domain/order"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/infrastructure/repository"
	"github.com/masterly-ai/masterly/internal/shared/db"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	subscriptionRepo subscription.SubscriptionRepository
	orderRepo        order.OrderRepository
	webhookEventRepo *repository.WebhookEventRepository
	txManager        *db.TransactionManager
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		subscriptionRepo: repository.NewSubscriptionRepository(gdb, log),
		orderRepo:        repository.NewOrderRepository(gdb),
		webhookEventRepo: repository.NewWebhookEventRepository(gdb),
		txManager:        db.NewTransactionManager(gdb),
	}
}
