package scheduler

import (
	"context"

	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
)

// SubscriptionReconcileJob adapts the stale-subscription reconciler to BatchJob.
type SubscriptionReconcileJob struct {
	uc *usecases.ReconcileStaleSubscriptionsUseCase
}

func NewSubscriptionReconcileJob(uc *usecases.ReconcileStaleSubscriptionsUseCase) *SubscriptionReconcileJob {
	return &SubscriptionReconcileJob{uc: uc}
}

// Execute returns the number of subscriptions whose local record changed.
func (j *SubscriptionReconcileJob) Execute(ctx context.Context) (int, error) {
	result, err := j.uc.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return result.Updated, nil
}
