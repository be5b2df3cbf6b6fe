package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/masterly-ai/masterly/internal/infrastructure/auth"
	"github.com/masterly-ai/masterly/internal/infrastructure/config"
	"github.com/masterly-ai/masterly/internal/infrastructure/lemonsqueezy"
	"github.com/masterly-ai/masterly/internal/infrastructure/metrics"
	"github.com/masterly-ai/masterly/internal/infrastructure/pubsub"
	"github.com/masterly-ai/masterly/internal/infrastructure/rpc"
	"github.com/masterly-ai/masterly/internal/infrastructure/scheduler"
	"github.com/masterly-ai/masterly/internal/interfaces/http/middleware"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and
// provides Shutdown() for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Metrics
	registry       *prometheus.Registry
	billingMetrics *metrics.BillingMetrics
	httpMetrics    *metrics.HTTPMetrics

	// Providers and buses
	lemonClient   *lemonsqueezy.Client
	webhookParser *lemonsqueezy.WebhookParser
	questionStore *rpc.Client
	changeBus     *pubsub.RedisSubscriptionEventBus

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	jwtSvc         *auth.JWTService
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Background services
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
// redisClient may be nil, in which case subscription changes are not
// broadcast to other instances.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
		ucs:    &allUseCases{},
	}

	// Section 1: Infrastructure - metrics, repositories, providers, auth
	c.initInfrastructure()

	// Section 2: Billing - use cases and the reconcile job
	if err := c.initBilling(); err != nil {
		return nil, fmt.Errorf("failed to initialize billing: %w", err)
	}

	// Section 3: Review - question store use cases
	c.initReview()

	// Section 4: Handlers
	c.initHandlers()

	return c, nil
}

// StartBackground starts the scheduler. It is separate from construction so
// one-off commands can build a container without running jobs.
func (c *Container) StartBackground() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background services and closes the Redis connection. The
// database is owned by the caller.
func (c *Container) Shutdown(ctx context.Context) {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}

	select {
	case <-ctx.Done():
		c.log.Warnw("container shutdown deadline exceeded", "error", ctx.Err())
	default:
		c.log.Infow("container shut down")
	}
}
