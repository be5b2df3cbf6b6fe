package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
	vo "github.com/masterly-ai/masterly/internal/domain/subscription/valueobjects"
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/mappers"
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/models"
	"github.com/masterly-ai/masterly/internal/shared/constants"
	"github.com/masterly-ai/masterly/internal/shared/db"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// upsertColumns are overwritten when a subscription_created event arrives for
// a row that already exists. id and created_at keep their first values.
var upsertColumns = []string{
	"user_id",
	"order_id",
	"customer_id",
	"status",
	"variant_id",
	"product_id",
	"variant_name",
	"renews_at",
	"ends_at",
	"trial_ends_at",
	"updated_at",
}

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Upsert(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	assignments := clause.AssignmentColumns(upsertColumns)
	assignments = append(assignments, clause.Assignment{
		Column: clause.Column{Name: "version"},
		Value:  gorm.Expr(constants.TableSubscriptions + ".version + 1"),
	})

	err = db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscription_id"}},
		DoUpdates: assignments,
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert subscription",
			"subscription_id", model.SubscriptionID,
			"error", err,
		)
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	r.logger.Infow("subscription upserted successfully",
		"subscription_id", model.SubscriptionID,
		"user_id", model.UserID,
		"status", model.Status,
	)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("subscription_id = ?", subscriptionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by provider ID", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) ListCurrentCandidatesByUser(ctx context.Context, userID string, now time.Time) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Scopes(
			db.CurrentSubscriptionCandidates(now, vo.LiveStatusStrings(), vo.StatusCancelled.String()),
			db.NewestFirst(),
		).
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list current subscriptions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list current subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}

	return entities, nil
}

// Update writes the entity only if the stored version still equals the
// entity's version, then bumps the version on both sides.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "id", subscriptionEntity.ID(), "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"order_id":      model.OrderID,
			"customer_id":   model.CustomerID,
			"status":        model.Status,
			"variant_id":    model.VariantID,
			"product_id":    model.ProductID,
			"variant_name":  model.VariantName,
			"renews_at":     model.RenewsAt,
			"ends_at":       model.EndsAt,
			"trial_ends_at": model.TrialEndsAt,
			"version":       gorm.Expr("version + 1"),
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	// The version always changes, so zero rows means the guard failed.
	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription update lost version race",
			"id", model.ID,
			"subscription_id", model.SubscriptionID,
			"version", model.Version,
		)
		return subscription.ErrStaleWrite
	}

	subscriptionEntity.IncrementVersion()
	r.logger.Infow("subscription updated successfully", "id", model.ID, "status", model.Status)
	return nil
}

func (r *SubscriptionRepositoryImpl) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("status IN ?", vo.LiveStatusStrings()).
		Where("renews_at IS NOT NULL AND renews_at < ?", cutoff).
		Order("renews_at ASC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list stale subscriptions", "cutoff", cutoff, "error", err)
		return nil, fmt.Errorf("failed to list stale subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}
