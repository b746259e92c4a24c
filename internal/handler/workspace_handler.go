package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// WorkspaceHandler exposes settings, integrations and the contact form.
type WorkspaceHandler struct {
	workspace *service.WorkspaceService
}

// NewWorkspaceHandler constructs a WorkspaceHandler.
func NewWorkspaceHandler(workspace *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspace: workspace}
}

// Settings handles GET /api/settings. An empty object is returned before the first save.
func (h *WorkspaceHandler) Settings(c echo.Context) error {
	settings, err := h.workspace.Settings(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch settings")
	}
	if settings == nil {
		return Success(c, http.StatusOK, "settings retrieved", map[string]any{})
	}
	return Success(c, http.StatusOK, "settings retrieved", settings)
}

// SaveSettings handles POST /api/settings.
func (h *WorkspaceHandler) SaveSettings(c echo.Context) error {
	var req dto.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	settings, err := h.workspace.SaveSettings(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to save settings")
	}
	return Success(c, http.StatusOK, "settings saved", settings)
}

// Integrations handles GET /api/integrations.
func (h *WorkspaceHandler) Integrations(c echo.Context) error {
	integrations, err := h.workspace.Integrations(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch integrations")
	}
	return Success(c, http.StatusOK, "integrations retrieved", integrations)
}

// SaveIntegration handles POST /api/integrations.
func (h *WorkspaceHandler) SaveIntegration(c echo.Context) error {
	var req dto.IntegrationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	integration, err := h.workspace.SaveIntegration(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to save integration")
	}
	return Success(c, http.StatusOK, "integration saved", integration)
}

// Contact handles POST /api/contact.
func (h *WorkspaceHandler) Contact(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.workspace.SubmitContact(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to submit contact request")
	}
	return Success(c, http.StatusCreated, "contact request received", contact)
}
