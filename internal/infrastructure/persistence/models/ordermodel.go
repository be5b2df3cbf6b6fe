package models

import (
	"time"

	"github.com/masterly-ai/masterly/internal/shared/constants"
)

// OrderModel stores one-time purchases reported by order_created events.
type OrderModel struct {
	ID        string    `gorm:"primarykey;size:36"`
	OrderID   string    `gorm:"uniqueIndex;not null;size:64"`
	UserID    string    `gorm:"not null;size:36;index:idx_order_user"`
	Status    string    `gorm:"not null;size:20"`
	Total     int64     `gorm:"not null;default:0;comment:minor currency units"`
	Currency  string    `gorm:"size:3"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return constants.TableOrders
}
