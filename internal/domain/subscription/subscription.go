package subscription

import (
	"fmt"
	"time"

	vo "github.com/masterly-ai/masterly/internal/domain/subscription/valueobjects"
)

// Subscription is the local cache of one user's billing relationship with the
// provider. The provider owns the truth; every mutation here mirrors either a
// webhook event or a confirmed provider call.
type Subscription struct {
	id             string
	subscriptionID string
	userID         string
	orderID        string
	customerID     string
	status         vo.SubscriptionStatus
	variantID      string
	productID      string
	variantName    string
	renewsAt       *time.Time
	endsAt         *time.Time
	trialEndsAt    *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// ProviderState is the subset of provider subscription attributes mirrored locally.
type ProviderState struct {
	Status      vo.SubscriptionStatus
	VariantID   string
	ProductID   string
	VariantName string
	OrderID     string
	CustomerID  string
	RenewsAt    *time.Time
	EndsAt      *time.Time
	TrialEndsAt *time.Time
}

// NewSubscription creates the local record for a subscription first seen in a
// subscription_created event.
func NewSubscription(id, subscriptionID, userID string, state ProviderState, now time.Time) (*Subscription, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	if subscriptionID == "" {
		return nil, fmt.Errorf("provider subscription ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !state.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, state.Status)
	}

	s := &Subscription{
		id:             id,
		subscriptionID: subscriptionID,
		userID:         userID,
		version:        1,
		createdAt:      now,
	}
	s.applyState(state)
	s.updatedAt = now
	return s, nil
}

// SubscriptionReconstructParams carries persisted fields back into the aggregate.
type SubscriptionReconstructParams struct {
	ID             string
	SubscriptionID string
	UserID         string
	OrderID        string
	CustomerID     string
	Status         vo.SubscriptionStatus
	VariantID      string
	ProductID      string
	VariantName    string
	RenewsAt       *time.Time
	EndsAt         *time.Time
	TrialEndsAt    *time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructSubscriptionWithParams rebuilds a subscription from persistence.
func ReconstructSubscriptionWithParams(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("subscription ID cannot be empty")
	}
	if p.SubscriptionID == "" {
		return nil, fmt.Errorf("provider subscription ID cannot be empty")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}

	return &Subscription{
		id:             p.ID,
		subscriptionID: p.SubscriptionID,
		userID:         p.UserID,
		orderID:        p.OrderID,
		customerID:     p.CustomerID,
		status:         p.Status,
		variantID:      p.VariantID,
		productID:      p.ProductID,
		variantName:    p.VariantName,
		renewsAt:       p.RenewsAt,
		endsAt:         p.EndsAt,
		trialEndsAt:    p.TrialEndsAt,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() string {
	return s.id
}

func (s *Subscription) SubscriptionID() string {
	return s.subscriptionID
}

func (s *Subscription) UserID() string {
	return s.userID
}

func (s *Subscription) OrderID() string {
	return s.orderID
}

func (s *Subscription) CustomerID() string {
	return s.customerID
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) VariantID() string {
	return s.variantID
}

func (s *Subscription) ProductID() string {
	return s.productID
}

func (s *Subscription) VariantName() string {
	return s.variantName
}

func (s *Subscription) RenewsAt() *time.Time {
	return s.renewsAt
}

func (s *Subscription) EndsAt() *time.Time {
	return s.endsAt
}

func (s *Subscription) TrialEndsAt() *time.Time {
	return s.trialEndsAt
}

func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// IncrementVersion is called by the repository after a successful
// compare-and-swap write.
func (s *Subscription) IncrementVersion() {
	s.version++
}

// IsCurrent reports whether the subscription still grants access at now:
// a live status, or cancelled with an end date in the future.
func (s *Subscription) IsCurrent(now time.Time) bool {
	if s.status.IsLive() {
		return true
	}
	return s.IsResumable(now)
}

// IsResumable reports whether the subscription was cancelled but its paid
// period has not ended yet.
func (s *Subscription) IsResumable(now time.Time) bool {
	return s.status == vo.StatusCancelled && s.endsAt != nil && s.endsAt.After(now)
}

// ApplyProviderState overwrites the mirrored attributes with the provider's
// values. Empty strings and an invalid status leave the current value alone.
func (s *Subscription) ApplyProviderState(state ProviderState, now time.Time) {
	s.applyState(state)
	s.updatedAt = now
}

func (s *Subscription) applyState(state ProviderState) {
	if state.Status.IsValid() {
		s.status = state.Status
	}
	if state.VariantID != "" {
		s.variantID = state.VariantID
	}
	if state.ProductID != "" {
		s.productID = state.ProductID
	}
	if state.VariantName != "" {
		s.variantName = state.VariantName
	}
	if state.OrderID != "" {
		s.orderID = state.OrderID
	}
	if state.CustomerID != "" {
		s.customerID = state.CustomerID
	}
	s.renewsAt = copyTime(state.RenewsAt)
	s.endsAt = copyTime(state.EndsAt)
	s.trialEndsAt = copyTime(state.TrialEndsAt)
}

// Cancel records a provider-confirmed cancellation. Access is kept until the
// end of the paid period, so endsAt takes the current renewsAt.
func (s *Subscription) Cancel(now time.Time) {
	s.MarkCancelled(s.renewsAt, now)
}

// MarkCancelled sets the cancelled status with an explicit end date.
func (s *Subscription) MarkCancelled(endsAt *time.Time, now time.Time) {
	s.status = vo.StatusCancelled
	s.endsAt = copyTime(endsAt)
	s.updatedAt = now
}

// Resume records a provider-confirmed resume. An empty or unknown provider
// status defaults to active.
func (s *Subscription) Resume(providerStatus vo.SubscriptionStatus, renewsAt *time.Time, now time.Time) {
	if !providerStatus.IsValid() {
		providerStatus = vo.StatusActive
	}
	s.status = providerStatus
	s.renewsAt = copyTime(renewsAt)
	s.endsAt = nil
	s.updatedAt = now
}

// ChangePlan records a provider-confirmed plan switch.
func (s *Subscription) ChangePlan(state ProviderState, now time.Time) {
	if state.VariantID != "" {
		s.variantID = state.VariantID
	}
	if state.ProductID != "" {
		s.productID = state.ProductID
	}
	if state.VariantName != "" {
		s.variantName = state.VariantName
	}
	if state.Status.IsValid() {
		s.status = state.Status
	}
	s.renewsAt = copyTime(state.RenewsAt)
	s.updatedAt = now
}

// SetStatus sets the status alone, used by the expire/pause/unpause/payment-failed events.
func (s *Subscription) SetStatus(status vo.SubscriptionStatus, now time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	s.status = status
	s.updatedAt = now
	return nil
}

// Reactivate sets status active and clears the end date.
func (s *Subscription) Reactivate(now time.Time) {
	s.status = vo.StatusActive
	s.endsAt = nil
	s.updatedAt = now
}

// RecordPaymentSuccess marks the subscription active and moves the renewal
// date forward when the provider sent one.
func (s *Subscription) RecordPaymentSuccess(renewsAt *time.Time, now time.Time) {
	s.status = vo.StatusActive
	if renewsAt != nil {
		s.renewsAt = copyTime(renewsAt)
	}
	s.updatedAt = now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
