// Package health serves the liveness endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/version"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	service string
	checks  map[string]Check
	logger  logger.Interface
}

func NewHandler(service string, logger logger.Interface) *Handler {
	return &Handler{
		service: service,
		checks:  make(map[string]Check),
		logger:  logger,
	}
}

// AddCheck registers a dependency check. Register checks before serving.
func (h *Handler) AddCheck(name string, check Check) {
	h.checks[name] = check
}

type Response struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles GET /health. Any failing check turns the answer into a
// 503 so load balancers stop routing to the instance.
//
// @Summary		Health check
// @Tags			system
// @Produce		json
// @Success		200	{object}	Response	"Healthy"
// @Failure		503	{object}	Response	"A dependency is down"
// @Router			/health [get]
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{
		Status:  "healthy",
		Service: h.service,
		Version: version.String(),
	}
	status := http.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warnw("health check failed", "check", name, "error", err)
			resp.Checks[name] = "down"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}

	c.JSON(status, resp)
}
