package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck probes a single dependency and returns an error when it
// is unreachable.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports service readiness by probing its dependencies.
type HealthHandler struct {
	service string
	checks  map[string]HealthCheck
	log     *zap.Logger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(service string, checks map[string]HealthCheck, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
		log:     log,
	}
}

// Check handles GET /health. It returns 200 when every dependency
// responds and 503 with per-dependency detail otherwise.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			h.log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			results[name] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "healthy"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": h.service,
		"checks":  results,
	})
}
