package order

import (
	"fmt"
	"time"
)

// Order is the immutable record of one completed checkout.
type Order struct {
	id        string
	orderID   string
	userID    string
	status    string
	total     int64
	currency  string
	createdAt time.Time
}

// NewOrder creates an order from an order_created event. total is in the
// currency's minor unit, as the provider reports it.
func NewOrder(id, orderID, userID, status string, total int64, currency string, createdAt time.Time) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	if orderID == "" {
		return nil, fmt.Errorf("provider order ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if total < 0 {
		return nil, fmt.Errorf("total cannot be negative")
	}

	return &Order{
		id:        id,
		orderID:   orderID,
		userID:    userID,
		status:    status,
		total:     total,
		currency:  currency,
		createdAt: createdAt,
	}, nil
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) OrderID() string {
	return o.orderID
}

func (o *Order) UserID() string {
	return o.userID
}

func (o *Order) Status() string {
	return o.status
}

// Total returns the amount in minor units.
func (o *Order) Total() int64 {
	return o.total
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}
