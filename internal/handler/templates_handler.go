package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// TemplatesHandler exposes reusable outreach templates.
type TemplatesHandler struct {
	templates *service.TemplatesService
}

// NewTemplatesHandler constructs a TemplatesHandler.
func NewTemplatesHandler(templates *service.TemplatesService) *TemplatesHandler {
	return &TemplatesHandler{templates: templates}
}

// List handles GET /api/templates.
func (h *TemplatesHandler) List(c echo.Context) error {
	templates, err := h.templates.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch templates")
	}
	return Success(c, http.StatusOK, "templates retrieved", templates)
}

// Create handles POST /api/templates.
func (h *TemplatesHandler) Create(c echo.Context) error {
	var req dto.TemplateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	tpl, err := h.templates.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create template")
	}
	return Success(c, http.StatusCreated, "template created", tpl)
}

// Update handles PUT /api/templates/:id.
func (h *TemplatesHandler) Update(c echo.Context) error {
	var req dto.TemplateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	tpl, err := h.templates.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update template")
	}
	return Success(c, http.StatusOK, "template updated", tpl)
}

// Delete handles DELETE /api/templates/:id.
func (h *TemplatesHandler) Delete(c echo.Context) error {
	if err := h.templates.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete template")
	}
	return Success(c, http.StatusOK, "template deleted", nil)
}
