// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"time"

	"gorm.io/gorm"
)

// CurrentSubscriptionCandidates narrows a subscriptions query to rows that can
// be a user's current subscription: one of the live statuses, or cancelled
// with access that has not yet ended. Callers still apply the domain
// selection rule to the result.
func CurrentSubscriptionCandidates(now time.Time, liveStatuses []string, cancelledStatus string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("status IN ?", liveStatuses).
				Or("status = ? AND ends_at > ?", cancelledStatus, now),
		)
	}
}

// NewestFirst orders rows by creation time, most recent first.
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}
