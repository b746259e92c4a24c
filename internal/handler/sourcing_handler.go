package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// SourcingHandler triggers AI sourcing runs.
type SourcingHandler struct {
	sourcing *service.SourcingService
}

// NewSourcingHandler constructs a SourcingHandler.
func NewSourcingHandler(sourcing *service.SourcingService) *SourcingHandler {
	return &SourcingHandler{sourcing: sourcing}
}

// Run handles POST /api/sourcing/run.
func (h *SourcingHandler) Run(c echo.Context) error {
	var req dto.SourcingRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	candidates, err := h.sourcing.Run(c.Request().Context(), req.JobID)
	if err != nil {
		return respondError(c, err, "failed to source candidates")
	}
	return Success(c, http.StatusCreated, "candidates sourced", candidates)
}
