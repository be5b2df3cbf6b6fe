package order

import "context"

type OrderRepository interface {
	// Create inserts the order. Inserting an order ID that already exists is
	// a no-op so that redelivered events stay harmless.
	Create(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
}
