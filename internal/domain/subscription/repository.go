package subscription

import (
	"context"
	"time"
)

// SubscriptionRepository persists the local subscription cache.
// Lookups return (nil, nil) when nothing matches.
type SubscriptionRepository interface {
	// Upsert inserts or fully overwrites the row keyed by provider subscription ID.
	Upsert(ctx context.Context, sub *Subscription) error
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*Subscription, error)
	// ListCurrentCandidatesByUser returns the user's subscriptions that may be
	// current at now, newest first.
	ListCurrentCandidatesByUser(ctx context.Context, userID string, now time.Time) ([]*Subscription, error)
	// Update writes sub if its version still matches the stored one and
	// returns ErrStaleWrite otherwise.
	Update(ctx context.Context, sub *Subscription) error
	// ListStale returns live subscriptions whose renewal date is before cutoff.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*Subscription, error)
}
