package usecases

import (
	"context"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/application/billing/dto"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/shared/biztime"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/utils"
)

type ChangePlanCommand struct {
	UserID    string `validate:"required"`
	VariantID string `validate:"required"`
}

type ChangePlanResult struct {
	Message      string
	Subscription *dto.SubscriptionDTO
}

// ChangePlanUseCase moves the caller's current subscription to another
// variant. The provider always invoices the difference immediately; the
// local proration preview is advisory.
type ChangePlanUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	provider         billingprovider.Provider
	publisher        ChangePublisher // Optional
	metrics          BillingMetrics  // Optional
	logger           logger.Interface
	now              func() time.Time
}

func NewChangePlanUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	provider billingprovider.Provider,
	logger logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetChangePublisher sets the subscription change publisher (optional dependency injection)
func (uc *ChangePlanUseCase) SetChangePublisher(p ChangePublisher) {
	uc.publisher = p
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *ChangePlanUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

func (uc *ChangePlanUseCase) Execute(ctx context.Context, cmd ChangePlanCommand) (*ChangePlanResult, error) {
	if err := requireUser(cmd.UserID); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
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
	if sub.VariantID() == cmd.VariantID {
		return nil, apperrors.NewBadRequestError("already on this plan")
	}

	start := time.Now()
	changed, err := uc.provider.ChangePlan(ctx, billingprovider.ChangePlanRequest{
		SubscriptionID:     sub.SubscriptionID(),
		VariantID:          cmd.VariantID,
		InvoiceImmediately: true,
	})
	observeCall(uc.metrics, "change_plan", start, err)
	if err != nil {
		uc.logger.Errorw("provider rejected plan change",
			"subscription_id", sub.SubscriptionID(),
			"variant_id", cmd.VariantID,
			"error", err,
		)
		return nil, providerError(err, "Failed to update plan")
	}

	fresh := refetchState(ctx, uc.provider, uc.metrics, uc.logger, sub.SubscriptionID(), changed)
	if fresh.VariantID == "" {
		fresh.VariantID = cmd.VariantID
	}

	saved, err := updateWithRetry(ctx, uc.subscriptionRepo, sub, func(s *subscription.Subscription) error {
		s.ChangePlan(fresh, now)
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save plan change locally",
			"subscription_id", sub.SubscriptionID(),
			"error", err,
		)
		sub.ChangePlan(fresh, now)
		saved = sub
	} else {
		publishChange(ctx, uc.publisher, uc.logger,
			subscription.NewChangedEvent(saved, subscription.ChangeSourceGateway, "change_plan", now))
	}

	uc.logger.Infow("subscription plan changed",
		"subscription_id", saved.SubscriptionID(),
		"user_id", cmd.UserID,
		"variant_id", saved.VariantID(),
	)

	return &ChangePlanResult{
		Message:      "Plan updated successfully.",
		Subscription: dto.ToSubscriptionDTO(saved),
	}, nil
}
