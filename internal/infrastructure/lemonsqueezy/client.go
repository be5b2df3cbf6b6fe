// Package lemonsqueezy talks to the Lemon Squeezy JSON:API and normalizes its
// webhooks.
package lemonsqueezy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/masterly-ai/masterly/internal/application/billing/billingprovider"
	"github.com/masterly-ai/masterly/internal/shared/config"
	"github.com/masterly-ai/masterly/internal/shared/constants"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const (
	defaultBaseURL = "https://api.lemonsqueezy.com/v1"
	// Maximum response body size accepted from the API (1MB)
	maxResponseSize = 1 << 20
)

// Client implements billingprovider.Provider over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	storeID    string
	httpClient *http.Client
	logger     logger.Interface
}

// Ensure Client implements Provider
var _ billingprovider.Provider = (*Client)(nil)

// NewClient creates a client. The configured timeout bounds every request in
// addition to the caller's context.
func NewClient(cfg config.LemonSqueezyConfig, logger logger.Interface) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		storeID: cfg.StoreID,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger: logger.Named("lemonsqueezy"),
	}
}

func (c *Client) CreateCheckout(ctx context.Context, req billingprovider.CheckoutRequest) (*billingprovider.CheckoutResponse, error) {
	attributes := map[string]any{
		"checkout_data": map[string]any{
			"custom": req.CustomData,
		},
	}
	if req.RedirectURL != "" {
		attributes["product_options"] = map[string]any{
			"redirect_url": req.RedirectURL,
		}
	}
	body := map[string]any{
		"data": map[string]any{
			"type":       "checkouts",
			"attributes": attributes,
			"relationships": map[string]any{
				"store":   newRelationship("stores", c.storeID),
				"variant": newRelationship("variants", req.VariantID),
			},
		},
	}

	var doc checkoutDocument
	if err := c.do(ctx, http.MethodPost, "/checkouts", body, &doc); err != nil {
		return nil, err
	}
	if doc.Data.Attributes.URL == "" {
		return nil, &billingprovider.APIError{Message: "checkout response did not include a URL"}
	}
	return &billingprovider.CheckoutResponse{
		CheckoutURL: doc.Data.Attributes.URL,
		ExpiresAt:   doc.Data.Attributes.ExpiresAt,
	}, nil
}

func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error) {
	var doc subscriptionDocument
	if err := c.do(ctx, http.MethodGet, subscriptionPath(subscriptionID), nil, &doc); err != nil {
		return nil, err
	}
	return doc.detail(), nil
}

// CancelSubscription cancels at period end. The provider keeps the
// subscription usable until ends_at.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error) {
	var doc subscriptionDocument
	if err := c.do(ctx, http.MethodDelete, subscriptionPath(subscriptionID), nil, &doc); err != nil {
		return nil, err
	}
	return doc.detail(), nil
}

func (c *Client) ResumeSubscription(ctx context.Context, subscriptionID string) (*billingprovider.SubscriptionDetail, error) {
	return c.patchSubscription(ctx, subscriptionID, map[string]any{
		"cancelled": false,
	})
}

func (c *Client) ChangePlan(ctx context.Context, req billingprovider.ChangePlanRequest) (*billingprovider.SubscriptionDetail, error) {
	return c.patchSubscription(ctx, req.SubscriptionID, map[string]any{
		"variant_id":          numericID(req.VariantID),
		"invoice_immediately": req.InvoiceImmediately,
	})
}

func (c *Client) patchSubscription(ctx context.Context, subscriptionID string, attributes map[string]any) (*billingprovider.SubscriptionDetail, error) {
	body := map[string]any{
		"data": map[string]any{
			"type":       "subscriptions",
			"id":         subscriptionID,
			"attributes": attributes,
		},
	}
	var doc subscriptionDocument
	if err := c.do(ctx, http.MethodPatch, subscriptionPath(subscriptionID), body, &doc); err != nil {
		return nil, err
	}
	return doc.detail(), nil
}

func subscriptionPath(subscriptionID string) string {
	return "/subscriptions/" + url.PathEscape(subscriptionID)
}

// do sends one JSON:API request. Transport failures and non-2xx responses
// come back as *billingprovider.APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", constants.ContentTypeJSONAPI)
	req.Header.Set("Content-Type", constants.ContentTypeJSONAPI)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Surface cancellation as-is so callers can tell it from provider failures.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		c.logger.Warnw("billing provider request failed", "method", method, "path", path, "error", err)
		return &billingprovider.APIError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &billingprovider.APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp.StatusCode, data)
		c.logger.Warnw("billing provider returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"detail", apiErr.Detail,
		)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &billingprovider.APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func decodeAPIError(status int, data []byte) *billingprovider.APIError {
	apiErr := &billingprovider.APIError{StatusCode: status}

	var doc errorDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}
	apiErr.Message = doc.Message
	for _, e := range doc.Errors {
		if e.Detail != "" {
			apiErr.Detail = e.Detail
			break
		}
		if apiErr.Message == "" {
			apiErr.Message = e.Title
		}
	}
	return apiErr
}
