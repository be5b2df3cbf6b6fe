package mappers

import (
	"fmt"

	"github.com/masterly-ai/masterly/internal/domain/order"
	"github.com/masterly-ai/masterly/internal/infrastructure/persistence/models"
)

func OrderToModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:        o.ID(),
		OrderID:   o.OrderID(),
		UserID:    o.UserID(),
		Status:    o.Status(),
		Total:     o.Total(),
		Currency:  o.Currency(),
		CreatedAt: o.CreatedAt(),
	}
}

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	o, err := order.NewOrder(model.ID, model.OrderID, model.UserID, model.Status, model.Total, model.Currency, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order %s: %w", model.OrderID, err)
	}
	return o, nil
}
