package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker defines an interface for checking dependency health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports that the process is serving requests. No dependency is
// checked.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz pings the database and returns 503 when it is unreachable.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status, code := "ok", http.StatusOK

	if h.db == nil {
		checks["database"] = "not configured"
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "error: " + err.Error()
		status, code = "unhealthy", http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	c.JSON(code, HealthResponse{Status: status, Checks: checks})
}
