package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service liveness.
type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	timestamp := h.now().UTC().Format(time.RFC3339)
	if err := h.db.PingContext(ctx); err != nil {
		log.Printf("health: database ping failed: %v", err)
		return Fail(c, http.StatusServiceUnavailable, "database unavailable", map[string]any{"status": "degraded", "timestamp": timestamp})
	}
	return Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok", "timestamp": timestamp})
}
