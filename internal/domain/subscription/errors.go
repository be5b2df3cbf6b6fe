package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidStatus        = errors.New("invalid subscription status")
	// ErrStaleWrite is returned when the row changed since it was loaded.
	ErrStaleWrite = errors.New("subscription was modified concurrently")
)
