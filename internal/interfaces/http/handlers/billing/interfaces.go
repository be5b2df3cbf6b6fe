package billing

import (
	"context"

	"github.com/masterly-ai/masterly/internal/application/billing/dto"
	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
)

// Use case interfaces for Handler

type handleWebhookUseCase interface {
	Execute(ctx context.Context, cmd usecases.HandleWebhookCommand) (*usecases.HandleWebhookResult, error)
}

type createCheckoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateCheckoutCommand) (*usecases.CreateCheckoutResult, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*usecases.CancelSubscriptionResult, error)
}

type resumeSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.ResumeSubscriptionCommand) (*usecases.ResumeSubscriptionResult, error)
}

type changePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePlanCommand) (*usecases.ChangePlanResult, error)
}

type getBillingPortalUseCase interface {
	Execute(ctx context.Context, cmd usecases.GetBillingPortalCommand) (*dto.PortalDTO, error)
}

type previewProrationUseCase interface {
	Execute(ctx context.Context, cmd usecases.PreviewProrationCommand) (*dto.ProrationDTO, error)
}
