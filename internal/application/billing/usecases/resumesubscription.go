package usecases

import (
	"context"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/shared/biztime"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

type ResumeSubscriptionCommand struct {
	UserID string
}

type ResumeSubscriptionResult struct {
	Message  string
	Status   string
	RenewsAt *time.Time
}

// ResumeSubscriptionUseCase undoes a cancellation while the paid period is
// still running.
type ResumeSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	provider         billingprovider.Provider
	publisher        ChangePublisher // Optional
	metrics          BillingMetrics  // Optional
	logger           logger.Interface
	now              func() time.Time
}

func NewResumeSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	provider billingprovider.Provider,
	logger logger.Interface,
) *ResumeSubscriptionUseCase {
	return &ResumeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetChangePublisher sets the subscription change publisher (optional dependency injection)
func (uc *ResumeSubscriptionUseCase) SetChangePublisher(p ChangePublisher) {
	uc.publisher = p
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *ResumeSubscriptionUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

func (uc *ResumeSubscriptionUseCase) Execute(ctx context.Context, cmd ResumeSubscriptionCommand) (*ResumeSubscriptionResult, error) {
	if err := requireUser(cmd.UserID); err != nil {
		return nil, err
	}

	now := uc.now()
	sub, err := findCurrentSubscription(ctx, uc.subscriptionRepo, cmd.UserID, now)
	if err != nil {
		uc.logger.Errorw("failed to look up subscription", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError(msgSubscriptionLookup)
	}
	if sub == nil || !sub.IsResumable(now) {
		return nil, apperrors.NewNotFoundError(msgNoResumable)
	}

	start := time.Now()
	resumed, err := uc.provider.ResumeSubscription(ctx, sub.SubscriptionID())
	observeCall(uc.metrics, "resume", start, err)
	if err != nil {
		uc.logger.Errorw("provider rejected resume",
			"subscription_id", sub.SubscriptionID(),
			"user_id", cmd.UserID,
			"error", err,
		)
		return nil, providerError(err, "Failed to resume subscription")
	}

	fresh := refetchState(ctx, uc.provider, uc.metrics, uc.logger, sub.SubscriptionID(), resumed)

	saved, err := updateWithRetry(ctx, uc.subscriptionRepo, sub, func(s *subscription.Subscription) error {
		s.Resume(fresh.Status, fresh.RenewsAt, now)
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save resume locally",
			"subscription_id", sub.SubscriptionID(),
			"error", err,
		)
	} else {
		publishChange(ctx, uc.publisher, uc.logger,
			subscription.NewChangedEvent(saved, subscription.ChangeSourceGateway, "resume", now))
	}

	uc.logger.Infow("subscription resumed",
		"subscription_id", sub.SubscriptionID(),
		"user_id", cmd.UserID,
	)

	status := fresh.Status.String()
	if !fresh.Status.IsValid() {
		status = "active"
	}
	return &ResumeSubscriptionResult{
		Message:  "Subscription resumed.",
		Status:   status,
		RenewsAt: fresh.RenewsAt,
	}, nil
}
