package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/masterly-ai/masterly/internal/interfaces/http/middleware"
	"github.com/masterly-ai/masterly/internal/interfaces/http/routes"

	_ "github.com/masterly-ai/masterly/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
	engine    *gin.Engine
}

// NewRouter creates a new HTTP router backed by the container's handlers.
func NewRouter(container *Container) *Router {
	return &Router{
		container: container,
		engine:    container.engine,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(c.log))
	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Metrics(c.httpMetrics))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))

	routes.SetupBillingRoutes(r.engine, &routes.BillingRouteConfig{
		BillingHandler: c.hdlrs.billingHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupReviewRoutes(r.engine, &routes.ReviewRouteConfig{
		ReviewHandler:  c.hdlrs.reviewHandler,
		AuthMiddleware: c.authMiddleware,
	})
}

// StartBackground starts scheduled jobs.
func (r *Router) StartBackground() {
	r.container.StartBackground()
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown gracefully shuts down background services.
func (r *Router) Shutdown(ctx context.Context) {
	r.container.Shutdown(ctx)
}
