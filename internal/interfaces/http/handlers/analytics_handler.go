package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/interfaces/http/response"
	"startup-platform.backend/internal/usecases"
)

// AnalyticsHandler handles owner analytics and matching endpoints
type AnalyticsHandler struct {
	analyticsUsecase *usecases.AnalyticsUsecase
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsUsecase *usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
	}
}

// StartupAnalytics returns the aggregated engagement analytics for one startup
// GET /api/analytics/startup/:id
func (h *AnalyticsHandler) StartupAnalytics(c *gin.Context) {
	viewer := viewerFrom(c)
	if viewer == nil {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	analytics, startup, err := h.analyticsUsecase.GetStartupAnalytics(c.Request.Context(), *viewer, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"startupId":   startup.ID,
		"startupName": startup.Name,
		"analytics":   analytics,
	})
}

// StartupMatches returns the cached investor and mentor matches for a startup
// GET /api/ai/matching/startup/:id
func (h *AnalyticsHandler) StartupMatches(c *gin.Context) {
	viewer := viewerFrom(c)
	if viewer == nil {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	matches, err := h.analyticsUsecase.GetStartupMatches(c.Request.Context(), *viewer, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, matches)
}
