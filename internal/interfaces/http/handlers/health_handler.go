package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"startup-platform.backend/internal/interfaces/http/response"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now(),
		version:   version,
	}
}

// Health returns the liveness payload
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "startup-platform-backend",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}
