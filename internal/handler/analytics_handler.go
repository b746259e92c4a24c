package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/service"
)

// AnalyticsHandler exposes workspace-wide metrics.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview handles GET /api/analytics/overview.
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	overview, err := h.analytics.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to compute analytics")
	}
	return Success(c, http.StatusOK, "analytics retrieved", overview)
}
