package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/shared/biztime"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const (
	defaultReconcileGrace     = 6 * time.Hour
	defaultReconcileBatchSize = 50
)

// ReconcileStaleSubscriptionsResult summarizes one reconcile run.
type ReconcileStaleSubscriptionsResult struct {
	Checked int
	Updated int
	Failed  int
}

// ReconcileStaleSubscriptionsUseCase refreshes live subscriptions whose
// renewal date passed without a webhook moving it forward. Webhooks can be
// lost; the provider remains the source of truth.
type ReconcileStaleSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	provider         billingprovider.Provider
	grace            time.Duration
	batchSize        int
	publisher        ChangePublisher // Optional
	metrics          BillingMetrics  // Optional
	logger           logger.Interface
	now              func() time.Time
}

func NewReconcileStaleSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	provider billingprovider.Provider,
	grace time.Duration,
	batchSize int,
	logger logger.Interface,
) *ReconcileStaleSubscriptionsUseCase {
	if grace <= 0 {
		grace = defaultReconcileGrace
	}
	if batchSize <= 0 {
		batchSize = defaultReconcileBatchSize
	}
	return &ReconcileStaleSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		grace:            grace,
		batchSize:        batchSize,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetChangePublisher sets the subscription change publisher (optional dependency injection)
func (uc *ReconcileStaleSubscriptionsUseCase) SetChangePublisher(p ChangePublisher) {
	uc.publisher = p
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *ReconcileStaleSubscriptionsUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

func (uc *ReconcileStaleSubscriptionsUseCase) Execute(ctx context.Context) (*ReconcileStaleSubscriptionsResult, error) {
	now := uc.now()
	stale, err := uc.subscriptionRepo.ListStale(ctx, now.Add(-uc.grace), uc.batchSize)
	if err != nil {
		return nil, err
	}

	result := &ReconcileStaleSubscriptionsResult{Checked: len(stale)}
	for _, sub := range stale {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		start := time.Now()
		detail, err := uc.provider.GetSubscription(ctx, sub.SubscriptionID())
		observeCall(uc.metrics, "get", start, err)
		if err != nil {
			result.Failed++
			uc.logger.Warnw("failed to fetch stale subscription from provider",
				"subscription_id", sub.SubscriptionID(),
				"error", err,
			)
			continue
		}

		saved, err := updateWithRetry(ctx, uc.subscriptionRepo, sub, func(s *subscription.Subscription) error {
			s.ApplyProviderState(detail.ProviderState, now)
			return nil
		})
		if err != nil {
			result.Failed++
			if !errors.Is(err, subscription.ErrStaleWrite) {
				uc.logger.Errorw("failed to save reconciled subscription",
					"subscription_id", sub.SubscriptionID(),
					"error", err,
				)
			}
			continue
		}

		result.Updated++
		publishChange(ctx, uc.publisher, uc.logger,
			subscription.NewChangedEvent(saved, subscription.ChangeSourceReconcile, "stale_renewal", now))
	}

	if result.Checked > 0 {
		uc.logger.Infow("stale subscription reconcile finished",
			"checked", result.Checked,
			"updated", result.Updated,
			"failed", result.Failed,
		)
	}
	return result, nil
}
