package mappers

import (
	"fmt"

	"github.com/masterly-ai/masterly/internal/domain/subscription"
	vo "github.com/masterly-ai/masterly/internal/domain/subscription/valueobjects"
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/models"
	"github.com/masterly-ai/masterly/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status, ok := vo.ParseStatus(model.Status)
	if !ok {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	entity, err := subscription.ReconstructSubscriptionWithParams(subscription.SubscriptionReconstructParams{
		ID:             model.ID,
		SubscriptionID: model.SubscriptionID,
		UserID:         model.UserID,
		OrderID:        model.OrderID,
		CustomerID:     model.CustomerID,
		Status:         status,
		VariantID:      model.VariantID,
		ProductID:      model.ProductID,
		VariantName:    model.VariantName,
		RenewsAt:       model.RenewsAt,
		EndsAt:         model.EndsAt,
		TrialEndsAt:    model.TrialEndsAt,
		Version:        model.Version,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:             entity.ID(),
		SubscriptionID: entity.SubscriptionID(),
		UserID:         entity.UserID(),
		OrderID:        entity.OrderID(),
		CustomerID:     entity.CustomerID(),
		Status:         entity.Status().String(),
		VariantID:      entity.VariantID(),
		ProductID:      entity.ProductID(),
		VariantName:    entity.VariantName(),
		RenewsAt:       entity.RenewsAt(),
		EndsAt:         entity.EndsAt(),
		TrialEndsAt:    entity.TrialEndsAt(),
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(modelList []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.SubscriptionModel) string { return model.ID })
}
