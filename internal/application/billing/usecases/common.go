package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const (
	msgNotAuthenticated   = "user not authenticated"
	msgNoActive           = "no active subscription found"
	msgNoResumable        = "no resumable subscription found"
	msgSubscriptionLookup = "failed to look up subscription"
)

// findCurrentSubscription returns the user's current subscription or nil.
func findCurrentSubscription(
	ctx context.Context,
	repo subscription.SubscriptionRepository,
	userID string,
	now time.Time,
) (*subscription.Subscription, error) {
	candidates, err := repo.ListCurrentCandidatesByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return subscription.SelectCurrent(candidates, now), nil
}

// updateWithRetry applies mutate and writes sub. When the row changed since
// it was loaded, the row is reloaded and mutate is applied once more.
func updateWithRetry(
	ctx context.Context,
	repo subscription.SubscriptionRepository,
	sub *subscription.Subscription,
	mutate func(s *subscription.Subscription) error,
) (*subscription.Subscription, error) {
	if err := mutate(sub); err != nil {
		return nil, err
	}
	err := repo.Update(ctx, sub)
	if !errors.Is(err, subscription.ErrStaleWrite) {
		if err != nil {
			return nil, err
		}
		return sub, nil
	}

	fresh, err := repo.GetBySubscriptionID(ctx, sub.SubscriptionID())
	if err != nil {
		return nil, fmt.Errorf("failed to reload subscription: %w", err)
	}
	if fresh == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}
	if err := mutate(fresh); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// providerError converts a failed provider call into an AppError carrying the
// provider's status code and its most specific message.
func providerError(err error, fallback string) error {
	var apiErr *billingprovider.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewProviderError(apiErr.StatusCode, apiErr.UserMessage(fallback))
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewProviderError(http.StatusGatewayTimeout, fallback, err.Error())
	}
	return apperrors.NewProviderError(http.StatusInternalServerError, fallback, err.Error())
}

// observeCall reports a provider call to metrics when configured.
func observeCall(m BillingMetrics, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ObserveProviderCall(operation, outcome, time.Since(start))
}

// publishChange sends event when a publisher is configured. Failures are
// logged only; the local write already succeeded.
func publishChange(ctx context.Context, p ChangePublisher, log logger.Interface, event *subscription.ChangedEvent) {
	if p == nil {
		return
	}
	if err := p.PublishChange(ctx, event); err != nil {
		log.Warnw("failed to publish subscription change",
			"subscription_id", event.SubscriptionID,
			"reason", event.Reason,
			"error", err,
		)
	}
}

func requireUser(userID string) error {
	if userID == "" {
		return apperrors.NewUnauthorizedError(msgNotAuthenticated)
	}
	return nil
}

// refetchState reads the subscription back from the provider after a change.
// When that fails, the change call's own response is used.
func refetchState(
	ctx context.Context,
	provider billingprovider.Provider,
	metrics BillingMetrics,
	log logger.Interface,
	subscriptionID string,
	fallback *billingprovider.SubscriptionDetail,
) subscription.ProviderState {
	start := time.Now()
	detail, err := provider.GetSubscription(ctx, subscriptionID)
	observeCall(metrics, "get", start, err)
	if err == nil && detail != nil {
		return detail.ProviderState
	}

	log.Warnw("failed to refetch subscription from provider",
		"subscription_id", subscriptionID,
		"error", err,
	)
	if fallback != nil {
		return fallback.ProviderState
	}
	return subscription.ProviderState{}
}
