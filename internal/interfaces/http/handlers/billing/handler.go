// Package billing serves the Lemon Squeezy webhook and the subscription
// action endpoints. Responses are flat JSON objects, not the API envelope,
// because the web client and the provider read top-level keys.
package billing

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/masterly-ai/masterly/internal/application/billing/dto"
	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
	"github.com/masterly-ai/masterly/internal/shared/constants"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/utils"
	"github.com/masterly-ai/masterly/internal/shared/utils/logutil"
)

const (
	maxWebhookBodyBytes = 1 << 20
	webhookLogPreview   = 512
	msgWebhookFailed    = "failed to process webhook"
	msgInvalidBody      = "invalid request body"
	msgNotAuthenticated = "user not authenticated"
)

type Handler struct {
	webhookUC    handleWebhookUseCase
	checkoutUC   createCheckoutUseCase
	cancelUC     cancelSubscriptionUseCase
	resumeUC     resumeSubscriptionUseCase
	changePlanUC changePlanUseCase
	portalUC     getBillingPortalUseCase
	prorationUC  previewProrationUseCase
	logger       logger.Interface
}

func NewHandler(
	webhookUC handleWebhookUseCase,
	checkoutUC createCheckoutUseCase,
	cancelUC cancelSubscriptionUseCase,
	resumeUC resumeSubscriptionUseCase,
	changePlanUC changePlanUseCase,
	portalUC getBillingPortalUseCase,
	prorationUC previewProrationUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		webhookUC:    webhookUC,
		checkoutUC:   checkoutUC,
		cancelUC:     cancelUC,
		resumeUC:     resumeUC,
		changePlanUC: changePlanUC,
		portalUC:     portalUC,
		prorationUC:  prorationUC,
		logger:       logger,
	}
}

type CheckoutRequest struct {
	VariantID  string         `json:"variantId"`
	CustomData map[string]any `json:"customData"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

type ChangePlanRequest struct {
	VariantID string `json:"variantId"`
}

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ChangePlanResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Subscription *dto.SubscriptionDTO `json:"subscription"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

// HandleWebhook verifies and applies one provider delivery. The raw body is
// read before anything else so the signature covers exactly what was sent.
//
// @Summary		Handle Lemon Squeezy webhook
// @Description	Verify the X-Signature HMAC and reconcile the local subscription cache
// @Tags			billing
// @Accept			json
// @Produce		json
// @Param			X-Signature	header		string				true	"HMAC-SHA256 hex digest of the body"
// @Success		200			{object}	WebhookResponse		"Delivery accepted"
// @Failure		401			{object}	utils.PlainError	"Invalid signature"
// @Failure		500			{object}	utils.PlainError	"Processing failed"
// @Router			/api/lemonsqueezy/webhook [post]
func (h *Handler) HandleWebhook(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("panic while handling webhook",
				"error", r,
				"stack", string(debug.Stack()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.PlainError{Error: msgWebhookFailed})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Errorw("failed to read webhook body", "error", err)
		utils.PlainErrorResponse(c, apperrors.NewInternalError(msgWebhookFailed))
		return
	}

	result, err := h.webhookUC.Execute(c.Request.Context(), usecases.HandleWebhookCommand{
		RawBody:   body,
		Signature: c.GetHeader(constants.HeaderXSignature),
	})
	if err != nil {
		if !apperrors.IsAuthError(err) {
			h.logger.Errorw("webhook rejected",
				"event_header", c.GetHeader(constants.HeaderXEventName),
				"payload", logutil.TruncatePayload(body, webhookLogPreview),
				"error", err,
			)
		}
		utils.PlainErrorResponse(c, err)
		return
	}

	h.logger.Debugw("webhook processed",
		"delivery_id", result.DeliveryID,
		"event_name", result.EventName,
		"outcome", result.Outcome,
	)
	c.JSON(http.StatusOK, WebhookResponse{Received: true})
}

// @Summary		Create checkout
// @Description	Create a hosted checkout for a plan variant, tagged with the caller's user id
// @Tags			billing
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			checkout	body		CheckoutRequest		true	"Variant and optional custom data"
// @Success		200			{object}	CheckoutResponse	"Checkout created"
// @Failure		400			{object}	utils.PlainError	"Bad request"
// @Failure		401			{object}	utils.PlainError	"Unauthorized"
// @Failure		429			{object}	utils.PlainError	"Rate limited"
// @Failure		500			{object}	utils.PlainError	"Provider call failed"
// @Router			/api/lemonsqueezy/checkout [post]
func (h *Handler) CreateCheckout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for checkout", "error", err)
		utils.PlainErrorResponse(c, apperrors.NewBadRequestError(msgInvalidBody))
		return
	}

	result, err := h.checkoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutCommand{
		UserID:     userID,
		VariantID:  req.VariantID,
		CustomData: req.CustomData,
	})
	if err != nil {
		utils.PlainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{CheckoutURL: result.CheckoutURL})
}

// @Summary		Cancel subscription
// @Description	Cancel the caller's current subscription at the end of the billing period
// @Tags			billing
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	ActionResponse		"Subscription cancelled"
// @Failure		401	{object}	utils.PlainError	"Unauthorized"
// @Failure		404	{object}	utils.PlainError	"No active subscription"
// @Failure		429	{object}	utils.PlainError	"Rate limited"
// @Failure		500	{object}	utils.PlainError	"Provider call failed"
// @Router			/api/lemonsqueezy/cancel [post]
func (h *Handler) CancelSubscription(c *gin.Context) {
	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		UserID: currentUserID(c),
	})
	if err != nil {
		utils.PlainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ActionResponse{Success: true, Message: result.Message})
}

// @Summary		Resume subscription
// @Description	Resume the caller's cancelled subscription before it ends
// @Tags			billing
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	ActionResponse		"Subscription resumed"
// @Failure		401	{object}	utils.PlainError	"Unauthorized"
// @Failure		404	{object}	utils.PlainError	"No subscription to resume"
// @Failure		429	{object}	utils.PlainError	"Rate limited"
// @Failure		500	{object}	utils.PlainError	"Provider call failed"
// @Router			/api/lemonsqueezy/resume [post]
func (h *Handler) ResumeSubscription(c *gin.Context) {
	result, err := h.resumeUC.Execute(c.Request.Context(), usecases.ResumeSubscriptionCommand{
		UserID: currentUserID(c),
	})
	if err != nil {
		utils.PlainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ActionResponse{Success: true, Message: result.Message})
}

// @Summary		Change plan
// @Description	Move the caller's current subscription to another variant with proration
// @Tags			billing
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			plan	body		ChangePlanRequest	true	"Target variant"
// @Success		200		{object}	ChangePlanResponse	"Plan changed"
// @Failure		400		{object}	utils.PlainError	"Bad request"
// @Failure		401		{object}	utils.PlainError	"Unauthorized"
// @Failure		404		{object}	utils.PlainError	"No active subscription"
// @Failure		429		{object}	utils.PlainError	"Rate limited"
// @Failure		500		{object}	utils.PlainError	"Provider call failed"
// @Router			/api/lemonsqueezy/update-plan [post]
func (h *Handler) ChangePlan(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for plan change", "error", err)
		utils.PlainErrorResponse(c, apperrors.NewBadRequestError(msgInvalidBody))
		return
	}

	result, err := h.changePlanUC.Execute(c.Request.Context(), usecases.ChangePlanCommand{
		UserID:    userID,
		VariantID: req.VariantID,
	})
	if err != nil {
		utils.PlainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ChangePlanResponse{
		Success:      true,
		Message:      result.Message,
		Subscription: result.Subscription,
	})
}

// @Summary		Get billing portal
// @Description	Return the customer portal URL and the caller's subscription state
// @Tags			billing
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	dto.PortalDTO		"Portal details"
// @Failure		401	{object}	utils.PlainError	"Unauthorized"
// @Failure		404	{object}	utils.PlainError	"No subscription"
// @Failure		429	{object}	utils.PlainError	"Rate limited"
// @Router			/api/lemonsqueezy/portal [get]
func (h *Handler) GetPortal(c *gin.Context) {
	result, err := h.portalUC.Execute(c.Request.Context(), usecases.GetBillingPortalCommand{
		UserID: currentUserID(c),
	})
	if err != nil {
		utils.PlainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary		Preview proration
// @Description	Compute the credit and charge of switching the current subscription to another variant
// @Tags			billing
// @Produce		json
// @Security		Bearer
// @Param			variantId	query		string				true	"Target variant id"
// @Success		200			{object}	dto.ProrationDTO	"Proration preview"
// @Failure		400			{object}	utils.PlainError	"Bad request"
// @Failure		401			{object}	utils.PlainError	"Unauthorized"
// @Failure		404			{object}	utils.PlainError	"No active subscription"
// @Router			/api/lemonsqueezy/proration [get]
func (h *Handler) PreviewProration(c *gin.Context) {
	result, err := h.prorationUC.Execute(c.Request.Context(), usecases.PreviewProrationCommand{
		UserID:       currentUserID(c),
		NewVariantID: c.Query("variantId"),
	})
	if err != nil {
		utils.PlainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func currentUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}

// requireUser answers 401 for anonymous callers of endpoints that read a
// body, so authentication is reported before body validation.
func requireUser(c *gin.Context) (string, bool) {
	userID := currentUserID(c)
	if userID == "" {
		utils.PlainErrorResponse(c, apperrors.NewUnauthorizedError(msgNotAuthenticated))
		return "", false
	}
	return userID, true
}
