package usecases

import (
	"context"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/utils"
)

// customDataUserIDKey is where webhooks later find the application user.
const customDataUserIDKey = "user_id"

type CreateCheckoutCommand struct {
	UserID     string `validate:"required"`
	VariantID  string `validate:"required"`
	CustomData map[string]any
}

type CreateCheckoutResult struct {
	CheckoutURL string
}

// CreateCheckoutUseCase starts a hosted checkout for the caller.
type CreateCheckoutUseCase struct {
	provider    billingprovider.Provider
	redirectURL string
	metrics     BillingMetrics // Optional
	logger      logger.Interface
}

func NewCreateCheckoutUseCase(
	provider billingprovider.Provider,
	redirectURL string,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		provider:    provider,
		redirectURL: redirectURL,
		logger:      logger,
	}
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *CreateCheckoutUseCase) SetMetrics(m BillingMetrics) {
	uc.metrics = m
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*CreateCheckoutResult, error) {
	if err := requireUser(cmd.UserID); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	customData := make(map[string]any, len(cmd.CustomData)+1)
	for k, v := range cmd.CustomData {
		customData[k] = v
	}
	// the authenticated caller always wins over client supplied data
	customData[customDataUserIDKey] = cmd.UserID

	start := time.Now()
	resp, err := uc.provider.CreateCheckout(ctx, billingprovider.CheckoutRequest{
		VariantID:   cmd.VariantID,
		CustomData:  customData,
		RedirectURL: uc.redirectURL,
	})
	observeCall(uc.metrics, "checkout", start, err)
	if err != nil {
		uc.logger.Errorw("failed to create checkout",
			"user_id", cmd.UserID,
			"variant_id", cmd.VariantID,
			"error", err,
		)
		return nil, providerError(err, "Failed to create checkout")
	}

	uc.logger.Infow("checkout created", "user_id", cmd.UserID, "variant_id", cmd.VariantID)
	return &CreateCheckoutResult{CheckoutURL: resp.CheckoutURL}, nil
}
