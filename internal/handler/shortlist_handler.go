package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// ShortlistHandler exposes the per-job candidate shortlist.
type ShortlistHandler struct {
	shortlist *service.ShortlistService
}

// NewShortlistHandler constructs a ShortlistHandler.
func NewShortlistHandler(shortlist *service.ShortlistService) *ShortlistHandler {
	return &ShortlistHandler{shortlist: shortlist}
}

// List handles GET /api/jobs/:id/candidates.
func (h *ShortlistHandler) List(c echo.Context) error {
	entries, err := h.shortlist.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch shortlist")
	}
	return Success(c, http.StatusOK, "shortlist retrieved", entries)
}

// Add handles POST /api/jobs/:id/candidates. The candidate is scored against
// the job before the entry is stored.
func (h *ShortlistHandler) Add(c echo.Context) error {
	var req dto.ShortlistAddRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.shortlist.Evaluate(c.Request().Context(), c.Param("id"), req.CandidateID)
	if err != nil {
		return respondError(c, err, "failed to evaluate candidate")
	}
	return Success(c, http.StatusOK, "candidate evaluated", entry)
}

// UpdateStatus handles PUT /api/jobs/:id/candidates/:candidateId.
func (h *ShortlistHandler) UpdateStatus(c echo.Context) error {
	var req dto.ShortlistStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.shortlist.UpdateStatus(c.Request().Context(), c.Param("id"), c.Param("candidateId"), req.Status)
	if err != nil {
		return respondError(c, err, "failed to update shortlist")
	}
	return Success(c, http.StatusOK, "shortlist updated", entry)
}
