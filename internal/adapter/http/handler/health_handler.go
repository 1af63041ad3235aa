package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModelService reports whether the model serving backend can classify
type ModelService interface {
	Ready(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	models ModelService
}

// NewHealthHandler creates a new health handler. Any dependency may be nil.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, models ModelService) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  redis,
		models: models,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	healthy := true

	record := func(name string, configured bool, check func() error) {
		if !configured {
			components[name] = "not configured"
			return
		}
		if err := check(); err != nil {
			components[name] = "error: " + err.Error()
			healthy = false
			return
		}
		components[name] = "ok"
	}

	record("database", h.db != nil, func() error { return h.pingDB(ctx) })
	record("model_service", h.models != nil, func() error { return h.models.Ready(ctx) })

	// The cache is optional; without it classification runs uncached
	switch {
	case h.redis == nil:
		components["redis"] = "not configured"
	case h.redis.Ping(ctx).Err() != nil:
		components["redis"] = "degraded"
	default:
		components["redis"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.pingDB(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unreachable"})
			return
		}
	}

	if h.models != nil {
		if err := h.models.Ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model service not ready"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
