package handlers

import (
	"context"
	"net/http"

	"lawdesk/utils"

	"github.com/gin-gonic/gin"
)

type HealthReporter interface {
	Status(ctx context.Context) utils.HealthStatus
}

type HealthHandler struct {
	monitor HealthReporter
}

func NewHealthHandler(monitor HealthReporter) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.monitor.Status(c.Request.Context())
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "services": status})
}
