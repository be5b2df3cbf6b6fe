package http

import (
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/billing"
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/health"
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/review"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler  *health.Handler
	billingHandler *billing.Handler
	reviewHandler  *review.Handler
}
