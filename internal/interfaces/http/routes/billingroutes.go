package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/billing"
	"github.com/masterly-ai/masterly/internal/interfaces/http/middleware"
)

type BillingRouteConfig struct {
	BillingHandler *billing.Handler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupBillingRoutes registers the Lemon Squeezy endpoints. The webhook is
// authenticated by its signature; the action endpoints resolve the caller
// optionally and answer 401 themselves in the billing error shape. They are
// rate limited per caller when a limiter is configured.
func SetupBillingRoutes(engine *gin.Engine, config *BillingRouteConfig) {
	ls := engine.Group("/api/lemonsqueezy")
	{
		ls.POST("/webhook", config.BillingHandler.HandleWebhook)
	}

	actions := ls.Group("")
	actions.Use(config.AuthMiddleware.OptionalAuth(), config.RateLimiter.Limit())
	{
		actions.POST("/checkout", config.BillingHandler.CreateCheckout)
		actions.POST("/cancel", config.BillingHandler.CancelSubscription)
		actions.POST("/resume", config.BillingHandler.ResumeSubscription)
		actions.POST("/update-plan", config.BillingHandler.ChangePlan)
		actions.GET("/portal", config.BillingHandler.GetPortal)
		actions.GET("/proration", config.BillingHandler.PreviewProration)
	}
}
