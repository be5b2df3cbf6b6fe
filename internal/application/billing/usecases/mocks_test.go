package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/order"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	vo "github.com/masterly-ai/masterly/internal/domain/subscription/valueobjects"
)

// memSubscriptionRepo keeps subscriptions in memory with the same
// compare-and-swap semantics as the gorm repository.
type memSubscriptionRepo struct {
	mu      sync.Mutex
	rows    map[string]*subscription.Subscription
	updates int

	ListErr   error
	UpdateErr error
	// BeforeUpdate runs before each Update, used to simulate a concurrent writer.
	BeforeUpdate func(r *memSubscriptionRepo, sub *subscription.Subscription)
}

func newMemSubscriptionRepo(subs ...*subscription.Subscription) *memSubscriptionRepo {
	r := &memSubscriptionRepo{rows: make(map[string]*subscription.Subscription)}
	for _, s := range subs {
		r.rows[s.SubscriptionID()] = cloneSubscription(s)
	}
	return r
}

func (r *memSubscriptionRepo) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.rows[sub.SubscriptionID()]; ok {
		merged, _ := subscription.ReconstructSubscriptionWithParams(subscription.SubscriptionReconstructParams{
			ID:             existing.ID(),
			SubscriptionID: sub.SubscriptionID(),
			UserID:         sub.UserID(),
			OrderID:        sub.OrderID(),
			CustomerID:     sub.CustomerID(),
			Status:         sub.Status(),
			VariantID:      sub.VariantID(),
			ProductID:      sub.ProductID(),
			VariantName:    sub.VariantName(),
			RenewsAt:       sub.RenewsAt(),
			EndsAt:         sub.EndsAt(),
			TrialEndsAt:    sub.TrialEndsAt(),
			Version:        existing.Version() + 1,
			CreatedAt:      existing.CreatedAt(),
			UpdatedAt:      sub.UpdatedAt(),
		})
		r.rows[sub.SubscriptionID()] = merged
		return nil
	}
	r.rows[sub.SubscriptionID()] = cloneSubscription(sub)
	return nil
}

func (r *memSubscriptionRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rows[subscriptionID]
	if !ok {
		return nil, nil
	}
	return cloneSubscription(s), nil
}

func (r *memSubscriptionRepo) ListCurrentCandidatesByUser(ctx context.Context, userID string, now time.Time) ([]*subscription.Subscription, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*subscription.Subscription
	for _, s := range r.rows {
		if s.UserID() == userID {
			out = append(out, cloneSubscription(s))
		}
	}
	return out, nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	if r.BeforeUpdate != nil {
		hook := r.BeforeUpdate
		r.BeforeUpdate = nil
		hook(r, sub)
	}
	if r.UpdateErr != nil {
		return r.UpdateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rows[sub.SubscriptionID()]
	if !ok || stored.Version() != sub.Version() {
		return subscription.ErrStaleWrite
	}
	sub.IncrementVersion()
	r.rows[sub.SubscriptionID()] = cloneSubscription(sub)
	r.updates++
	return nil
}

func (r *memSubscriptionRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*subscription.Subscription
	for _, s := range r.rows {
		if s.Status().IsLive() && s.RenewsAt() != nil && s.RenewsAt().Before(cutoff) {
			out = append(out, cloneSubscription(s))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memSubscriptionRepo) get(subscriptionID string) *subscription.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[subscriptionID]
}

// bump simulates another writer committing a change.
func (r *memSubscriptionRepo) bump(subscriptionID string, mutate func(s *subscription.Subscription)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.rows[subscriptionID]
	mutate(s)
	s.IncrementVersion()
}

func cloneSubscription(s *subscription.Subscription) *subscription.Subscription {
	c, err := subscription.ReconstructSubscriptionWithParams(subscription.SubscriptionReconstructParams{
		ID:             s.ID(),
		SubscriptionID: s.SubscriptionID(),
		UserID:         s.UserID(),
		OrderID:        s.OrderID(),
		CustomerID:     s.CustomerID(),
		Status:         s.Status(),
		VariantID:      s.VariantID(),
		ProductID:      s.ProductID(),
		VariantName:    s.VariantName(),
		RenewsAt:       copyTimePtr(s.RenewsAt()),
		EndsAt:         copyTimePtr(s.EndsAt()),
		TrialEndsAt:    copyTimePtr(s.TrialEndsAt()),
		Version:        s.Version(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

type mockOrderRepository struct {
	CreateFunc func(ctx context.Context, o *order.Order) error
	created    []*order.Order
}

func (m *mockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	for _, o := range m.created {
		if o.OrderID() == orderID {
			return o, nil
		}
	}
	return nil, nil
}

type mockProvider struct {
	CreateCheckoutFunc     func(ctx context.Context, req billingprovider.CheckoutRequest) (*billingprovider.CheckoutResponse, error)
	GetSubscriptionFunc    func(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error)
	CancelSubscriptionFunc func(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error)
	ResumeSubscriptionFunc func(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error)
	ChangePlanFunc         func(ctx context.Context, req billingprovider.ChangePlanRequest) (*billingprovider.SubscriptionDetail, error)

	calls []string
}

func (m *mockProvider) CreateCheckout(ctx context.Context, req billingprovider.CheckoutRequest) (*billingprovider.CheckoutResponse, error) {
	m.calls = append(m.calls, "checkout")
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, req)
	}
	return &billingprovider.CheckoutResponse{CheckoutURL: "https://checkout.test/abc"}, nil
}

func (m *mockProvider) GetSubscription(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error) {
	m.calls = append(m.calls, "get")
	if m.GetSubscriptionFunc != nil {
		return m.GetSubscriptionFunc(ctx, subscriptionID)
	}
	return &billingprovider.SubscriptionDetail{SubscriptionID: subscriptionID}, nil
}

func (m *mockProvider) CancelSubscription(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error) {
	m.calls = append(m.calls, "cancel")
	if m.CancelSubscriptionFunc != nil {
		return m.CancelSubscriptionFunc(ctx, subscriptionID)
	}
	return &billingprovider.SubscriptionDetail{SubscriptionID: subscriptionID}, nil
}

func (m *mockProvider) ResumeSubscription(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error) {
	m.calls = append(m.calls, "resume")
	if m.ResumeSubscriptionFunc != nil {
		return m.ResumeSubscriptionFunc(ctx, subscriptionID)
	}
	return &billingprovider.SubscriptionDetail{SubscriptionID: subscriptionID}, nil
}

func (m *mockProvider) ChangePlan(ctx context.Context, req billingprovider.ChangePlanRequest) (*billingprovider.SubscriptionDetail, error) {
	m.calls = append(m.calls, "change_plan")
	if m.ChangePlanFunc != nil {
		return m.ChangePlanFunc(ctx, req)
	}
	return &billingprovider.SubscriptionDetail{SubscriptionID: req.SubscriptionID}, nil
}

type mockVerifier struct {
	VerifyErr error
	Event     *billingprovider.WebhookEvent
	ParseErr  error
}

func (m *mockVerifier) Verify(rawBody []byte, signature string) error {
	return m.VerifyErr
}

func (m *mockVerifier) Parse(rawBody []byte) (*billingprovider.WebhookEvent, error) {
	if m.ParseErr != nil {
		return nil, m.ParseErr
	}
	return m.Event, nil
}

type mockPublisher struct {
	events []*subscription.ChangedEvent
	err    error
}

func (m *mockPublisher) PublishChange(ctx context.Context, event *subscription.ChangedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockMetrics struct {
	webhooks []string
	calls    []string
}

func (m *mockMetrics) ObserveWebhook(eventName, outcome string) {
	m.webhooks = append(m.webhooks, eventName+":"+outcome)
}

func (m *mockMetrics) ObserveProviderCall(operation, outcome string, duration time.Duration) {
	m.calls = append(m.calls, operation+":"+outcome)
}

type mockRecorder struct {
	records []*WebhookRecord
}

func (m *mockRecorder) Record(ctx context.Context, rec *WebhookRecord) error {
	m.records = append(m.records, rec)
	return nil
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return testNow
}

func newTestSubscription(subscriptionID, userID string, status vo.SubscriptionStatus, createdAt time.Time, renewsAt, endsAt *time.Time) *subscription.Subscription {
	s, err := subscription.ReconstructSubscriptionWithParams(subscription.SubscriptionReconstructParams{
		ID:             "local-" + subscriptionID,
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Status:         status,
		VariantID:      "v_monthly",
		ProductID:      "p_1",
		RenewsAt:       renewsAt,
		EndsAt:         endsAt,
		Version:        1,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	})
	if err != nil {
		panic(err)
	}
	return s
}

func timePtr(t time.Time) *time.Time {
	return &t
}
