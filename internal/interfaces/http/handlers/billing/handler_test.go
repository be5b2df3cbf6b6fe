package billing

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterly-ai/masterly/internal/application/billing/dto"
	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/testutil"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
)

const testUserID = "6f1c2a4e-3b7d-4c55-9a0e-2d8f4b1c7e90"

// =====================================================================
// Mock use cases
// =====================================================================

type mockWebhookUC struct {
	cmd    usecases.HandleWebhookCommand
	result *usecases.HandleWebhookResult
	err    error
	panics bool
}

func (m *mockWebhookUC) Execute(ctx context.Context, cmd usecases.HandleWebhookCommand) (*usecases.HandleWebhookResult, error) {
	m.cmd = cmd
	if m.panics {
		panic("nil map write")
	}
	return m.result, m.err
}

type mockCheckoutUC struct {
	cmd    usecases.CreateCheckoutCommand
	called bool
	result *usecases.CreateCheckoutResult
	err    error
}

func (m *mockCheckoutUC) Execute(ctx context.Context, cmd usecases.CreateCheckoutCommand) (*usecases.CreateCheckoutResult, error) {
	m.called = true
	m.cmd = cmd
	return m.result, m.err
}

type mockCancelUC struct {
	result *usecases.CancelSubscriptionResult
	err    error
}

func (m *mockCancelUC) Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*usecases.CancelSubscriptionResult, error) {
	return m.result, m.err
}

type mockResumeUC struct {
	result *usecases.ResumeSubscriptionResult
	err    error
}

func (m *mockResumeUC) Execute(ctx context.Context, cmd usecases.ResumeSubscriptionCommand) (*usecases.ResumeSubscriptionResult, error) {
	return m.result, m.err
}

type mockChangePlanUC struct {
	cmd    usecases.ChangePlanCommand
	result *usecases.ChangePlanResult
	err    error
}

func (m *mockChangePlanUC) Execute(ctx context.Context, cmd usecases.ChangePlanCommand) (*usecases.ChangePlanResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockPortalUC struct {
	result *dto.PortalDTO
	err    error
}

func (m *mockPortalUC) Execute(ctx context.Context, cmd usecases.GetBillingPortalCommand) (*dto.PortalDTO, error) {
	return m.result, m.err
}

type mockProrationUC struct {
	cmd    usecases.PreviewProrationCommand
	result *dto.ProrationDTO
	err    error
}

func (m *mockProrationUC) Execute(ctx context.Context, cmd usecases.PreviewProrationCommand) (*dto.ProrationDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type handlerMocks struct {
	webhook    *mockWebhookUC
	checkout   *mockCheckoutUC
	cancel     *mockCancelUC
	resume     *mockResumeUC
	changePlan *mockChangePlanUC
	portal     *mockPortalUC
	proration  *mockProrationUC
}

func newTestHandler() (*Handler, *handlerMocks) {
	m := &handlerMocks{
		webhook:    &mockWebhookUC{},
		checkout:   &mockCheckoutUC{},
		cancel:     &mockCancelUC{},
		resume:     &mockResumeUC{},
		changePlan: &mockChangePlanUC{},
		portal:     &mockPortalUC{},
		proration:  &mockProrationUC{},
	}
	h := NewHandler(m.webhook, m.checkout, m.cancel, m.resume, m.changePlan, m.portal, m.proration, testutil.NewMockLogger())
	return h, m
}

// =====================================================================
// Webhook
// =====================================================================

func TestHandler_HandleWebhook(t *testing.T) {
	tests := []struct {
		name       string
		result     *usecases.HandleWebhookResult
		err        error
		panics     bool
		wantStatus int
		wantError  string
	}{
		{
			name:       "applied",
			result:     &usecases.HandleWebhookResult{DeliveryID: "whd_1", EventName: "subscription_created", Outcome: usecases.OutcomeApplied},
			wantStatus: http.StatusOK,
		},
		{
			name:       "handler failure is still acknowledged",
			result:     &usecases.HandleWebhookResult{DeliveryID: "whd_2", EventName: "subscription_updated", Outcome: usecases.OutcomeFailed},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid signature",
			err:        apperrors.NewSignatureInvalidError("signature mismatch"),
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid signature",
		},
		{
			name:       "malformed payload",
			err:        apperrors.NewInternalError("failed to process webhook", "unexpected end of JSON input"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to process webhook",
		},
		{
			name:       "panic",
			panics:     true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to process webhook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.webhook.result = tt.result
			m.webhook.err = tt.err
			m.webhook.panics = tt.panics

			body := []byte(`{"meta":{"event_name":"subscription_created"}}`)
			c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/webhook", body)
			c.Request.Header.Set("X-Signature", "deadbeef")

			h.HandleWebhook(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, body, m.webhook.cmd.RawBody)
			assert.Equal(t, "deadbeef", m.webhook.cmd.Signature)

			if tt.wantError == "" {
				var resp WebhookResponse
				require.NoError(t, testutil.ParseResponse(w, &resp))
				assert.True(t, resp.Received)
				return
			}
			var resp testutil.PlainError
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

// =====================================================================
// Checkout
// =====================================================================

func TestHandler_CreateCheckout_Success(t *testing.T) {
	h, m := newTestHandler()
	m.checkout.result = &usecases.CreateCheckoutResult{CheckoutURL: "https://masterly.lemonsqueezy.com/checkout/abc"}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/checkout", map[string]any{
		"variantId":  "222",
		"customData": map[string]any{"source": "pricing"},
	})
	testutil.SetAuthContext(c, testUserID)

	h.CreateCheckout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp CheckoutResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "https://masterly.lemonsqueezy.com/checkout/abc", resp.CheckoutURL)
	assert.Equal(t, testUserID, m.checkout.cmd.UserID)
	assert.Equal(t, "222", m.checkout.cmd.VariantID)
	assert.Equal(t, "pricing", m.checkout.cmd.CustomData["source"])
}

func TestHandler_CreateCheckout_NotAuthenticated(t *testing.T) {
	h, m := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/checkout", nil)

	h.CreateCheckout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, m.checkout.called)
	var resp testutil.PlainError
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "user not authenticated", resp.Error)
}

func TestHandler_CreateCheckout_InvalidBody(t *testing.T) {
	h, m := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/checkout", []byte(`{"variantId":`))
	testutil.SetAuthContext(c, testUserID)

	h.CreateCheckout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, m.checkout.called)
}

func TestHandler_CreateCheckout_ProviderError(t *testing.T) {
	h, m := newTestHandler()
	m.checkout.err = apperrors.NewProviderError(http.StatusUnprocessableEntity, "The variant is not published.")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/checkout", map[string]any{"variantId": "999"})
	testutil.SetAuthContext(c, testUserID)

	h.CreateCheckout(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp testutil.PlainError
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "The variant is not published.", resp.Error)
}

// =====================================================================
// Cancel / resume
// =====================================================================

func TestHandler_CancelSubscription(t *testing.T) {
	h, m := newTestHandler()
	m.cancel.result = &usecases.CancelSubscriptionResult{Message: "Subscription cancelled. You keep access until March 1, 2025."}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/cancel", nil)
	testutil.SetAuthContext(c, testUserID)

	h.CancelSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ActionResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "March 1, 2025")
}

func TestHandler_CancelSubscription_NotFound(t *testing.T) {
	h, m := newTestHandler()
	m.cancel.err = apperrors.NewNotFoundError("no active subscription found")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/cancel", nil)
	testutil.SetAuthContext(c, testUserID)

	h.CancelSubscription(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp testutil.PlainError
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "no active subscription found", resp.Error)
}

func TestHandler_ResumeSubscription(t *testing.T) {
	h, m := newTestHandler()
	m.resume.result = &usecases.ResumeSubscriptionResult{Message: "Subscription resumed.", Status: "active"}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/resume", nil)
	testutil.SetAuthContext(c, testUserID)

	h.ResumeSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ActionResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Subscription resumed.", resp.Message)
}

func TestHandler_ResumeSubscription_UnexpectedError(t *testing.T) {
	h, m := newTestHandler()
	m.resume.err = errors.New("connection refused")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/resume", nil)
	testutil.SetAuthContext(c, testUserID)

	h.ResumeSubscription(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

// =====================================================================
// Change plan
// =====================================================================

func TestHandler_ChangePlan_Success(t *testing.T) {
	h, m := newTestHandler()
	renews := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	m.changePlan.result = &usecases.ChangePlanResult{
		Message: "Plan updated.",
		Subscription: &dto.SubscriptionDTO{
			SubscriptionID: "1001",
			Status:         "active",
			VariantID:      "333",
			RenewsAt:       &renews,
		},
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/update-plan", map[string]string{"variantId": "333"})
	testutil.SetAuthContext(c, testUserID)

	h.ChangePlan(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "333", m.changePlan.cmd.VariantID)
	assert.Equal(t, testUserID, m.changePlan.cmd.UserID)

	var resp ChangePlanResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Subscription)
	assert.Equal(t, "333", resp.Subscription.VariantID)
}

func TestHandler_ChangePlan_SamePlan(t *testing.T) {
	h, m := newTestHandler()
	m.changePlan.err = apperrors.NewBadRequestError("already on this plan")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/update-plan", map[string]string{"variantId": "222"})
	testutil.SetAuthContext(c, testUserID)

	h.ChangePlan(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.PlainError
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "already on this plan", resp.Error)
}

func TestHandler_ChangePlan_NotAuthenticated(t *testing.T) {
	h, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/lemonsqueezy/update-plan", map[string]string{"variantId": "222"})

	h.ChangePlan(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// Portal / proration
// =====================================================================

func TestHandler_GetPortal(t *testing.T) {
	h, m := newTestHandler()
	m.portal.result = &dto.PortalDTO{
		PortalURL: "https://masterly.lemonsqueezy.com/billing?expires=1",
		Status:    "active",
		VariantID: "222",
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/lemonsqueezy/portal", nil)
	testutil.SetAuthContext(c, testUserID)

	h.GetPortal(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "https://masterly.lemonsqueezy.com/billing?expires=1", resp["portalUrl"])
	assert.Contains(t, resp, "renewsAt")
	assert.Contains(t, resp, "endsAt")
}

func TestHandler_PreviewProration(t *testing.T) {
	h, m := newTestHandler()
	m.proration.result = &dto.ProrationDTO{
		CurrentVariantID: "222",
		NewVariantID:     "333",
		Charge:           "15.00",
		Credit:           "5.00",
		NewPlanCost:      "20.00",
		DaysRemaining:    15,
		IsUpgrade:        true,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/lemonsqueezy/proration", nil)
	testutil.SetQueryParams(c, map[string]string{"variantId": "333"})
	testutil.SetAuthContext(c, testUserID)

	h.PreviewProration(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "333", m.proration.cmd.NewVariantID)

	var resp dto.ProrationDTO
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "15.00", resp.Charge)
	assert.True(t, resp.IsUpgrade)
}
