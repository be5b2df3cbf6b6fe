package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/masterly-ai/masterly/internal/application/billing/usecases"
	reviewUsecases "github.com/masterly-ai/masterly/internal/application/review/usecases"
	"github.com/masterly-ai/masterly/internal/domain/subscription"
	"github.com/masterly-ai/masterly/internal/infrastructure/auth"
	"github.com/masterly-ai/masterly/internal/infrastructure/config"
	"github.com/masterly-ai/masterly/internal/infrastructure/lemonsqueezy"
	"github.com/masterly-ai/masterly/internal/infrastructure/metrics"
	"github.com/masterly-ai/masterly/internal/infrastructure/pubsub"
	"github.com/masterly-ai/masterly/internal/infrastructure/rpc"
	"github.com/masterly-ai/masterly/internal/infrastructure/scheduler"
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/billing"
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/health"
	"github.com/masterly-ai/masterly/internal/interfaces/http/handlers/review"
	"github.com/masterly-ai/masterly/internal/interfaces/http/middleware"
)

const serviceName = "masterly"

// ============================================================
// Section 1: Infrastructure - metrics, repositories, providers, auth
// ============================================================

func (c *Container) initInfrastructure() {
	cfg := c.cfg
	log := c.log

	c.registry = metrics.NewRegistry()
	c.billingMetrics = metrics.NewBillingMetrics(c.registry)
	c.httpMetrics = metrics.NewHTTPMetrics(c.registry)

	c.repos = newRepositories(c.db, log)

	c.lemonClient = lemonsqueezy.NewClient(cfg.LemonSqueezy, log)
	c.webhookParser = lemonsqueezy.NewWebhookParser(cfg.LemonSqueezy.WebhookSecret)
	c.questionStore = rpc.NewClient(c.db, log)

	if c.redis != nil {
		c.changeBus = pubsub.NewRedisSubscriptionEventBus(c.redis, log)
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, cfg.Auth.CookieName, log)

	if c.redis != nil && cfg.RateLimit.Enabled {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, cfg.RateLimit.RequestsPerMinute, time.Minute, log.Named("ratelimit"))
	}
}

// ============================================================
// Section 2: Billing - use cases and the reconcile job
// ============================================================

func (c *Container) initBilling() error {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	ucs := c.ucs

	ucs.handleWebhookUC = usecases.NewHandleWebhookUseCase(repos.subscriptionRepo, repos.orderRepo, c.webhookParser, log.Named("webhook"))
	ucs.handleWebhookUC.SetTransactor(repos.txManager)
	ucs.handleWebhookUC.SetRecorder(repos.webhookEventRepo)
	ucs.handleWebhookUC.SetMetrics(c.billingMetrics)
	ucs.handleWebhookUC.SetProvider(c.lemonClient)

	ucs.createCheckoutUC = usecases.NewCreateCheckoutUseCase(c.lemonClient, cfg.LemonSqueezy.RedirectURL, log)
	ucs.createCheckoutUC.SetMetrics(c.billingMetrics)

	ucs.cancelUC = usecases.NewCancelSubscriptionUseCase(repos.subscriptionRepo, c.lemonClient, log)
	ucs.cancelUC.SetMetrics(c.billingMetrics)

	ucs.resumeUC = usecases.NewResumeSubscriptionUseCase(repos.subscriptionRepo, c.lemonClient, log)
	ucs.resumeUC.SetMetrics(c.billingMetrics)

	ucs.changePlanUC = usecases.NewChangePlanUseCase(repos.subscriptionRepo, c.lemonClient, log)
	ucs.changePlanUC.SetMetrics(c.billingMetrics)

	ucs.billingPortalUC = usecases.NewGetBillingPortalUseCase(repos.subscriptionRepo, c.lemonClient, log)
	ucs.billingPortalUC.SetMetrics(c.billingMetrics)

	ucs.previewProrationUC = usecases.NewPreviewProrationUseCase(repos.subscriptionRepo, planCatalog(cfg), log)

	ucs.reconcileStaleUC = usecases.NewReconcileStaleSubscriptionsUseCase(
		repos.subscriptionRepo,
		c.lemonClient,
		time.Duration(cfg.Scheduler.ReconcileGraceHours)*time.Hour,
		cfg.Scheduler.ReconcileBatchSize,
		log.Named("reconcile"),
	)
	ucs.reconcileStaleUC.SetMetrics(c.billingMetrics)

	// Inject the change publisher only when Redis is configured
	if c.changeBus != nil {
		ucs.handleWebhookUC.SetChangePublisher(c.changeBus)
		ucs.cancelUC.SetChangePublisher(c.changeBus)
		ucs.resumeUC.SetChangePublisher(c.changeBus)
		ucs.changePlanUC.SetChangePublisher(c.changeBus)
		ucs.reconcileStaleUC.SetChangePublisher(c.changeBus)
	}

	if !cfg.Scheduler.Enabled {
		log.Infow("scheduler disabled, stale subscriptions will not be reconciled")
		return nil
	}

	schedulerManager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return err
	}
	interval := time.Duration(cfg.Scheduler.ReconcileIntervalMins) * time.Minute
	if err := schedulerManager.RegisterSubscriptionReconcileJob(scheduler.NewSubscriptionReconcileJob(ucs.reconcileStaleUC), interval); err != nil {
		return err
	}
	c.schedulerManager = schedulerManager
	return nil
}

// planCatalog builds the proration price list from the configured plans.
func planCatalog(cfg *config.Config) *subscription.PlanCatalog {
	plans := make([]subscription.Plan, 0, len(cfg.LemonSqueezy.Plans))
	for _, p := range cfg.LemonSqueezy.Plans {
		plans = append(plans, subscription.Plan{
			VariantID:     p.VariantID,
			Name:          p.Name,
			Price:         decimal.NewFromFloat(p.Price).Round(2),
			Interval:      subscription.Interval(p.Interval),
			IntervalCount: p.IntervalCount,
		})
	}
	return subscription.NewPlanCatalog(plans)
}

// ============================================================
// Section 3: Review - question store use cases
// ============================================================

func (c *Container) initReview() {
	log := c.log.Named("review")
	store := c.questionStore
	ucs := c.ucs

	ucs.dueCountUC = reviewUsecases.NewGetDueCountUseCase(store, log)
	ucs.dueQuestionsUC = reviewUsecases.NewGetDueQuestionsUseCase(store, c.cfg.Review.BatchSize, log)
	ucs.recordAnswerUC = reviewUsecases.NewRecordAnswerUseCase(store, log)
	ucs.userStatsUC = reviewUsecases.NewGetUserStatsUseCase(store, log)
	ucs.materialQuestionsUC = reviewUsecases.NewGetMaterialQuestionsUseCase(store, log)
	ucs.saveQuestionsUC = reviewUsecases.NewSaveQuestionsUseCase(store, log)
	ucs.deleteMaterialUC = reviewUsecases.NewDeleteMaterialUseCase(store, log)
}

// ============================================================
// Section 4: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	healthHandler := health.NewHandler(serviceName, log)
	healthHandler.AddCheck("database", func(ctx context.Context) error {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if c.redis != nil {
		healthHandler.AddCheck("redis", func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}

	c.hdlrs = &allHandlers{
		healthHandler: healthHandler,
		billingHandler: billing.NewHandler(
			ucs.handleWebhookUC,
			ucs.createCheckoutUC,
			ucs.cancelUC,
			ucs.resumeUC,
			ucs.changePlanUC,
			ucs.billingPortalUC,
			ucs.previewProrationUC,
			log.Named("billing"),
		),
		reviewHandler: review.NewHandler(
			ucs.dueCountUC,
			ucs.dueQuestionsUC,
			ucs.recordAnswerUC,
			ucs.userStatsUC,
			ucs.materialQuestionsUC,
			ucs.saveQuestionsUC,
			ucs.deleteMaterialUC,
			log.Named("review"),
		),
	}
}
