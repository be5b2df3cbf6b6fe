package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/shared/biztime"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const accessDateLayout = "January 2, 2006"

type CancelSubscriptionCommand struct {
	UserID string
}

type CancelSubscriptionResult struct {
	Message string
	EndsAt  *time.Time
}

// CancelSubscriptionUseCase cancels the caller's current subscription at the
// provider. Access continues until the end of the paid period.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	provider         billingprovider.Provider
	publisher        ChangePublisher // Optional
	metrics          BillingMetrics  // Optional
	logger           logger.Interface
	now              func() time.Time
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	provider billingprovider.Provider,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetChangePublisher sets the subscription change publisher (optional dependency injection)
func (uc *CancelSubscriptionUseCase) SetChangePublisher(p ChangePublisher) {
	uc.publisher = p
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *CancelSubscriptionUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*CancelSubscriptionResult, error) {
	if err := requireUser(cmd.UserID); err != nil {
		return nil, err
	}

	now := uc.now()
	sub, err := findCurrentSubscription(ctx, uc.subscriptionRepo, cmd.UserID, now)
	if err != nil {
		uc.logger.Errorw("failed to look up subscription", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError(msgSubscriptionLookup)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError(msgNoActive)
	}

	start := time.Now()
	_, err = uc.provider.CancelSubscription(ctx, sub.SubscriptionID())
	observeCall(uc.metrics, "cancel", start, err)
	if err != nil {
		uc.logger.Errorw("provider rejected cancellation",
			"subscription_id", sub.SubscriptionID(),
			"user_id", cmd.UserID,
			"error", err,
		)
		return nil, providerError(err, "Failed to cancel subscription")
	}

	saved, err := updateWithRetry(ctx, uc.subscriptionRepo, sub, func(s *subscription.Subscription) error {
		s.Cancel(now)
		return nil
	})
	if err != nil {
		// the provider already cancelled; the subscription_cancelled webhook
		// brings the local row in line
		uc.logger.Errorw("failed to save cancellation locally",
			"subscription_id", sub.SubscriptionID(),
			"error", err,
		)
		saved = sub
	} else {
		publishChange(ctx, uc.publisher, uc.logger,
			subscription.NewChangedEvent(saved, subscription.ChangeSourceGateway, "cancel", now))
	}

	uc.logger.Infow("subscription cancelled",
		"subscription_id", saved.SubscriptionID(),
		"user_id", cmd.UserID,
	)

	return &CancelSubscriptionResult{
		Message: cancelMessage(saved.EndsAt()),
		EndsAt:  saved.EndsAt(),
	}, nil
}

func cancelMessage(endsAt *time.Time) string {
	if endsAt == nil {
		return "Subscription cancelled."
	}
	return fmt.Sprintf("Subscription cancelled. You'll keep access until %s.",
		biztime.FormatInBizTimezone(*endsAt, accessDateLayout))
}
