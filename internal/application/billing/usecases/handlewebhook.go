package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/order"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	vo "github.com/masterly-ai/masterly/internal/domain/subscription/valueobjects"
	"github.com/masterly-ai/masterly/internal/shared/biztime"
	"github.com/masterly-ai/masterly/internal/shared/db"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/id"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const unknownEventName = "unknown"

type HandleWebhookCommand struct {
	RawBody   []byte
	Signature string
}

type HandleWebhookResult struct {
	DeliveryID string
	EventName  string
	Outcome    string
}

// HandleWebhookUseCase applies provider webhook deliveries to the local
// subscription and order records.
//
// Every handler writes absolute values, so a redelivered or reordered event
// converges on the provider's latest state. Failures while applying a
// verified event are logged and acknowledged; the provider would only
// redeliver the same payload.
type HandleWebhookUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	orderRepo        order.OrderRepository
	verifier         billingprovider.WebhookVerifier
	provider         billingprovider.Provider // Optional
	txManager        db.Transactor            // Optional
	publisher        ChangePublisher          // Optional
	metrics          BillingMetrics           // Optional
	recorder         WebhookEventRecorder     // Optional
	logger           logger.Interface
	now              func() time.Time
}

func NewHandleWebhookUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	orderRepo order.OrderRepository,
	verifier billingprovider.WebhookVerifier,
	logger logger.Interface,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		verifier:         verifier,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetTransactor runs each event handler inside a database transaction.
func (uc *HandleWebhookUseCase) SetTransactor(tm db.Transactor) {
	uc.txManager = tm
}

// SetProvider lets events that carry no subscription attributes, such as
// subscription_payment_success, refetch the subscription from the provider.
func (uc *HandleWebhookUseCase) SetProvider(p billingprovider.Provider) {
	uc.provider = p
}

// SetChangePublisher sets the subscription change publisher (optional dependency injection)
func (uc *HandleWebhookUseCase) SetChangePublisher(p ChangePublisher) {
	uc.publisher = p
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *HandleWebhookUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

// SetRecorder sets the webhook audit recorder (optional dependency injection)
func (uc *HandleWebhookUseCase) SetRecorder(r WebhookEventRecorder) {
	uc.recorder = r
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd HandleWebhookCommand) (*HandleWebhookResult, error) {
	deliveryID := id.NewWebhookDeliveryID()

	if err := uc.verifier.Verify(cmd.RawBody, cmd.Signature); err != nil {
		uc.logger.Warnw("rejected webhook with invalid signature",
			"delivery_id", deliveryID,
			"error", err,
		)
		uc.observe(unknownEventName, OutcomeRejected)
		return nil, apperrors.NewSignatureInvalidError(err.Error())
	}

	event, err := uc.verifier.Parse(cmd.RawBody)
	if err != nil {
		uc.logger.Errorw("failed to parse webhook payload",
			"delivery_id", deliveryID,
			"error", err,
		)
		uc.observe(unknownEventName, OutcomeFailed)
		return nil, apperrors.NewInternalError("failed to process webhook", err.Error())
	}

	log := uc.logger.With(
		"delivery_id", deliveryID,
		"event_name", string(event.Name),
		"subscription_id", event.SubscriptionID,
	)

	outcome, handleErr := uc.dispatch(ctx, log, event)
	if handleErr != nil {
		log.Errorw("failed to apply webhook event", "error", handleErr)
	}

	uc.observe(string(event.Name), outcome)
	uc.record(ctx, log, deliveryID, event, cmd.RawBody, outcome, handleErr)

	return &HandleWebhookResult{
		DeliveryID: deliveryID,
		EventName:  string(event.Name),
		Outcome:    outcome,
	}, nil
}

func (uc *HandleWebhookUseCase) dispatch(
	ctx context.Context,
	log logger.Interface,
	event *billingprovider.WebhookEvent,
) (string, error) {
	switch event.Name {
	case billingprovider.EventOrderCreated:
		return uc.handleOrderCreated(ctx, log, event)
	case billingprovider.EventSubscriptionCreated:
		return uc.handleSubscriptionCreated(ctx, log, event)
	case billingprovider.EventSubscriptionUpdated:
		return uc.updateExisting(ctx, log, event, func(s *subscription.Subscription, now time.Time) error {
			s.ApplyProviderState(uc.stateOf(event), now)
			return nil
		})
	case billingprovider.EventSubscriptionCancelled:
		return uc.updateExisting(ctx, log, event, func(s *subscription.Subscription, now time.Time) error {
			s.MarkCancelled(uc.stateOf(event).EndsAt, now)
			return nil
		})
	case billingprovider.EventSubscriptionResumed, billingprovider.EventSubscriptionUnpaused:
		return uc.updateExisting(ctx, log, event, func(s *subscription.Subscription, now time.Time) error {
			s.Reactivate(now)
			return nil
		})
	case billingprovider.EventSubscriptionExpired:
		return uc.updateExisting(ctx, log, event, setStatus(vo.StatusExpired))
	case billingprovider.EventSubscriptionPaused:
		return uc.updateExisting(ctx, log, event, setStatus(vo.StatusPaused))
	case billingprovider.EventSubscriptionPaymentSuccess:
		renewsAt := uc.renewsAtAfterPayment(ctx, log, event)
		return uc.updateExisting(ctx, log, event, func(s *subscription.Subscription, now time.Time) error {
			s.RecordPaymentSuccess(renewsAt, now)
			return nil
		})
	case billingprovider.EventSubscriptionPaymentFailed:
		return uc.updateExisting(ctx, log, event, setStatus(vo.StatusPastDue))
	default:
		log.Infow("ignoring unhandled webhook event")
		return OutcomeIgnored, nil
	}
}

func setStatus(status vo.SubscriptionStatus) func(s *subscription.Subscription, now time.Time) error {
	return func(s *subscription.Subscription, now time.Time) error {
		return s.SetStatus(status, now)
	}
}

func (uc *HandleWebhookUseCase) stateOf(event *billingprovider.WebhookEvent) subscription.ProviderState {
	if event.Subscription == nil {
		return subscription.ProviderState{}
	}
	return *event.Subscription
}

// renewsAtAfterPayment returns the next renewal date for a paid invoice. The
// invoice payload has no renews_at, so the subscription is fetched from the
// provider outside any transaction. On failure the renewal date is left for
// the following subscription_updated event.
func (uc *HandleWebhookUseCase) renewsAtAfterPayment(
	ctx context.Context,
	log logger.Interface,
	event *billingprovider.WebhookEvent,
) *time.Time {
	if event.Subscription != nil && event.Subscription.RenewsAt != nil {
		return event.Subscription.RenewsAt
	}
	if uc.provider == nil || event.SubscriptionID == "" {
		return nil
	}

	start := time.Now()
	detail, err := uc.provider.GetSubscription(ctx, event.SubscriptionID)
	observeCall(uc.metrics, "get", start, err)
	if err != nil {
		log.Warnw("failed to fetch subscription after payment, keeping renews_at", "error", err)
		return nil
	}
	return detail.RenewsAt
}

func (uc *HandleWebhookUseCase) handleOrderCreated(
	ctx context.Context,
	log logger.Interface,
	event *billingprovider.WebhookEvent,
) (string, error) {
	if event.UserID == "" {
		log.Warnw("order_created without user id, skipping")
		return OutcomeSkipped, nil
	}
	if event.Order == nil {
		return OutcomeFailed, fmt.Errorf("order_created without order attributes")
	}

	createdAt := event.Order.CreatedAt
	if createdAt.IsZero() {
		createdAt = uc.now()
	}
	o, err := order.NewOrder(uuid.NewString(), event.Order.OrderID, event.UserID,
		event.Order.Status, event.Order.Total, event.Order.Currency, createdAt)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("invalid order: %w", err)
	}

	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to save order: %w", err)
	}

	log.Infow("order recorded", "order_id", o.OrderID(), "user_id", o.UserID())
	return OutcomeApplied, nil
}

func (uc *HandleWebhookUseCase) handleSubscriptionCreated(
	ctx context.Context,
	log logger.Interface,
	event *billingprovider.WebhookEvent,
) (string, error) {
	if event.UserID == "" {
		log.Warnw("subscription_created without user id, skipping")
		return OutcomeSkipped, nil
	}

	now := uc.now()
	sub, err := subscription.NewSubscription(uuid.NewString(), event.SubscriptionID, event.UserID, uc.stateOf(event), now)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("invalid subscription: %w", err)
	}

	if err := uc.inTransaction(ctx, func(ctx context.Context) error {
		return uc.subscriptionRepo.Upsert(ctx, sub)
	}); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to upsert subscription: %w", err)
	}

	log.Infow("subscription created", "user_id", sub.UserID(), "status", sub.Status().String())
	publishChange(ctx, uc.publisher, uc.logger,
		subscription.NewChangedEvent(sub, subscription.ChangeSourceWebhook, string(event.Name), now))
	return OutcomeApplied, nil
}

// updateExisting applies mutate to the stored subscription. The row must
// already exist; events for unknown subscriptions are logged and dropped.
func (uc *HandleWebhookUseCase) updateExisting(
	ctx context.Context,
	log logger.Interface,
	event *billingprovider.WebhookEvent,
	mutate func(s *subscription.Subscription, now time.Time) error,
) (string, error) {
	if event.SubscriptionID == "" {
		return OutcomeFailed, fmt.Errorf("%s without subscription id", event.Name)
	}

	now := uc.now()
	var saved *subscription.Subscription
	err := uc.inTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.subscriptionRepo.GetBySubscriptionID(ctx, event.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		if current == nil {
			return subscription.ErrSubscriptionNotFound
		}

		saved, err = updateWithRetry(ctx, uc.subscriptionRepo, current, func(s *subscription.Subscription) error {
			return mutate(s, now)
		})
		return err
	})

	switch {
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		log.Warnw("webhook for unknown subscription, skipping")
		return OutcomeNotFound, nil
	case errors.Is(err, subscription.ErrStaleWrite):
		return OutcomeFailed, fmt.Errorf("subscription changed concurrently twice: %w", err)
	case err != nil:
		return OutcomeFailed, err
	}

	log.Infow("subscription updated from webhook", "status", saved.Status().String())
	publishChange(ctx, uc.publisher, uc.logger,
		subscription.NewChangedEvent(saved, subscription.ChangeSourceWebhook, string(event.Name), now))
	return OutcomeApplied, nil
}

func (uc *HandleWebhookUseCase) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if uc.txManager == nil {
		return fn(ctx)
	}
	return uc.txManager.RunInTransaction(ctx, fn)
}

func (uc *HandleWebhookUseCase) observe(eventName, outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveWebhook(eventName, outcome)
	}
}

// record writes the audit entry outside the handler's transaction so that a
// rolled back event is still visible.
func (uc *HandleWebhookUseCase) record(
	ctx context.Context,
	log logger.Interface,
	deliveryID string,
	event *billingprovider.WebhookEvent,
	rawBody []byte,
	outcome string,
	handleErr error,
) {
	if uc.recorder == nil {
		return
	}

	rec := &WebhookRecord{
		DeliveryID:     deliveryID,
		EventName:      string(event.Name),
		SubscriptionID: event.SubscriptionID,
		UserID:         event.UserID,
		Payload:        rawBody,
		Outcome:        outcome,
		ReceivedAt:     uc.now(),
	}
	if handleErr != nil {
		rec.Error = handleErr.Error()
	}

	if err := uc.recorder.Record(ctx, rec); err != nil {
		log.Warnw("failed to record webhook event", "error", err)
	}
}
