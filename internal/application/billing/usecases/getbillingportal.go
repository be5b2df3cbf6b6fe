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
)

type GetBillingPortalCommand struct {
	UserID string
}

// GetBillingPortalUseCase returns the provider's customer portal link for the
// caller's current subscription. Portal links are signed and short-lived, so
// they are fetched on every call instead of being stored.
type GetBillingPortalUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	provider         billingprovider.Provider
	metrics          BillingMetrics // Optional
	logger           logger.Interface
	now              func() time.Time
}

func NewGetBillingPortalUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	provider billingprovider.Provider,
	logger logger.Interface,
) *GetBillingPortalUseCase {
	return &GetBillingPortalUseCase{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *GetBillingPortalUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

func (uc *GetBillingPortalUseCase) Execute(ctx context.Context, cmd GetBillingPortalCommand) (*dto.PortalDTO, error) {
	if err := requireUser(cmd.UserID); err != nil {
		return nil, err
	}

	sub, err := findCurrentSubscription(ctx, uc.subscriptionRepo, cmd.UserID, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to look up subscription", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError(msgSubscriptionLookup)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError(msgNoActive)
	}

	start := time.Now()
	detail, err := uc.provider.GetSubscription(ctx, sub.SubscriptionID())
	observeCall(uc.metrics, "get", start, err)
	if err != nil {
		uc.logger.Errorw("failed to fetch subscription from provider",
			"subscription_id", sub.SubscriptionID(),
			"error", err,
		)
		return nil, providerError(err, "Failed to get billing portal")
	}
	if detail.CustomerPortalURL == "" {
		uc.logger.Warnw("provider returned no customer portal url", "subscription_id", sub.SubscriptionID())
		return nil, apperrors.NewInternalError("billing portal is not available")
	}

	status := sub.Status().String()
	if detail.Status.IsValid() {
		status = detail.Status.String()
	}
	variantID := sub.VariantID()
	if detail.VariantID != "" {
		variantID = detail.VariantID
	}

	return &dto.PortalDTO{
		PortalURL: detail.CustomerPortalURL,
		Status:    status,
		VariantID: variantID,
		RenewsAt:  detail.RenewsAt,
		EndsAt:    detail.EndsAt,
	}, nil
}
