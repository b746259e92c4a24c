package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// OutreachHandler exposes email drafting, delivery and tracking.
type OutreachHandler struct {
	outreach *service.OutreachService
}

// NewOutreachHandler constructs an OutreachHandler.
func NewOutreachHandler(outreach *service.OutreachService) *OutreachHandler {
	return &OutreachHandler{outreach: outreach}
}

// GenerateEmail handles POST /api/outreach/generate-email.
func (h *OutreachHandler) GenerateEmail(c echo.Context) error {
	var req dto.GenerateEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	email, err := h.outreach.GenerateEmail(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to generate email")
	}
	return Success(c, http.StatusOK, "email generated", email)
}

// ListEmails handles GET /api/outreach/emails.
func (h *OutreachHandler) ListEmails(c echo.Context) error {
	emails, err := h.outreach.ListEmails(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch outreach emails")
	}
	return Success(c, http.StatusOK, "outreach emails retrieved", emails)
}

// CreateEmail handles POST /api/outreach/emails.
func (h *OutreachHandler) CreateEmail(c echo.Context) error {
	var req dto.CreateOutreachEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	email, err := h.outreach.CreateEmail(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to record outreach email")
	}
	return Success(c, http.StatusCreated, "outreach email recorded", email)
}

// UpdateEmailStatus handles PUT /api/outreach/emails/:id/status.
func (h *OutreachHandler) UpdateEmailStatus(c echo.Context) error {
	var req dto.OutreachStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	email, err := h.outreach.UpdateEmailStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, err, "failed to update outreach email")
	}
	return Success(c, http.StatusOK, "outreach email updated", email)
}

// DeleteEmail handles DELETE /api/outreach/emails/:id.
func (h *OutreachHandler) DeleteEmail(c echo.Context) error {
	if err := h.outreach.DeleteEmail(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete outreach email")
	}
	return Success(c, http.StatusOK, "outreach email deleted", nil)
}
