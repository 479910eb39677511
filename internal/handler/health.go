package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName  = "catalog"
	readyTimeout = 2 * time.Second
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthOptions struct {
	DB        Pinger
	Driver    string
	Version   string
	StartTime time.Time
}

// HealthHandler serves the liveness and readiness probes. Readiness fails
// while the book store cannot be reached.
type HealthHandler struct {
	opts HealthOptions
}

func NewHealthHandler(opts HealthOptions) *HealthHandler {
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	return &HealthHandler{opts: opts}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"service":        serviceName,
		"version":        h.opts.Version,
		"uptime_seconds": int64(time.Since(h.opts.StartTime).Seconds()),
	})
}

// Ready pings the store and reports how long the round trip took.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	started := time.Now()
	err := h.opts.DB.PingContext(ctx)
	store := gin.H{
		"driver":     h.opts.Driver,
		"latency_ms": time.Since(started).Milliseconds(),
	}

	if err != nil {
		store["status"] = "down"
		store["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
			"db":      store,
		})
		return
	}

	store["status"] = "up"
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": serviceName,
		"version": h.opts.Version,
		"db":      store,
	})
}
