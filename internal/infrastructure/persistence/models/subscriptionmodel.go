package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/masterly-ai/masterly/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID             string `gorm:"primarykey;size:36"`
	SubscriptionID string `gorm:"uniqueIndex;not null;size:64;comment:provider subscription id"`
	UserID         string `gorm:"not null;size:36;index:idx_subscription_user"`
	OrderID        string `gorm:"size:64"`
	CustomerID     string `gorm:"size:64"`
	Status         string `gorm:"not null;size:20;index:idx_subscription_status"`
	VariantID      string `gorm:"size:64"`
	ProductID      string `gorm:"size:64"`
	VariantName    string `gorm:"size:255"`
	RenewsAt       *time.Time
	EndsAt         *time.Time
	TrialEndsAt    *time.Time
	Version        int `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
