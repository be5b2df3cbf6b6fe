package http

import (
	billingUsecases "github.com/masterly-ai/masterly/internal/application/billing/usecases"
	reviewUsecases "github.com/masterly-ai/masterly/internal/application/review/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Billing
	handleWebhookUC    *billingUsecases.HandleWebhookUseCase
	createCheckoutUC   *billingUsecases.CreateCheckoutUseCase
	cancelUC           *billingUsecases.CancelSubscriptionUseCase
	resumeUC           *billingUsecases.ResumeSubscriptionUseCase
	changePlanUC       *billingUsecases.ChangePlanUseCase
	billingPortalUC    *billingUsecases.GetBillingPortalUseCase
	previewProrationUC *billingUsecases.PreviewProrationUseCase
	reconcileStaleUC   *billingUsecases.ReconcileStaleSubscriptionsUseCase

	// Review
	dueCountUC          *reviewUsecases.GetDueCountUseCase
	dueQuestionsUC      *reviewUsecases.GetDueQuestionsUseCase
	recordAnswerUC      *reviewUsecases.RecordAnswerUseCase
	userStatsUC         *reviewUsecases.GetUserStatsUseCase
	materialQuestionsUC *reviewUsecases.GetMaterialQuestionsUseCase
	saveQuestionsUC     *reviewUsecases.SaveQuestionsUseCase
	deleteMaterialUC    *reviewUsecases.DeleteMaterialUseCase
}
