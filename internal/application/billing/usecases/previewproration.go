package usecases

import (
	"context"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/dto"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/shared/biztime"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

type PreviewProrationCommand struct {
	UserID       string
	NewVariantID string
}

// PreviewProrationUseCase estimates the cost of switching the caller's
// current subscription to another plan. The result is for display only.
type PreviewProrationUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	catalog          *subscription.PlanCatalog
	logger           logger.Interface
	now              func() time.Time
}

func NewPreviewProrationUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	catalog *subscription.PlanCatalog,
	logger logger.Interface,
) *PreviewProrationUseCase {
	return &PreviewProrationUseCase{
		subscriptionRepo: subscriptionRepo,
		catalog:          catalog,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

func (uc *PreviewProrationUseCase) Execute(ctx context.Context, cmd PreviewProrationCommand) (*dto.ProrationDTO, error) {
	if err := requireUser(cmd.UserID); err != nil {
		return nil, err
	}
	if cmd.NewVariantID == "" {
		return nil, apperrors.NewValidationError("variantId is required")
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
	if sub.VariantID() == cmd.NewVariantID {
		return nil, apperrors.NewBadRequestError("already on this plan")
	}

	current, ok := uc.catalog.Get(sub.VariantID())
	if !ok {
		return nil, apperrors.NewBadRequestError("current plan has no configured price", sub.VariantID())
	}
	next, ok := uc.catalog.Get(cmd.NewVariantID)
	if !ok {
		return nil, apperrors.NewBadRequestError("unknown plan", cmd.NewVariantID)
	}

	// without a renewal date there is no unused time to credit
	renewsAt := now
	if sub.RenewsAt() != nil {
		renewsAt = *sub.RenewsAt()
	}

	result := subscription.CalculateProration(current, next, renewsAt, now)
	return dto.ToProrationDTO(current.VariantID, next.VariantID, result), nil
}
