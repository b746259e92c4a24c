package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// InterviewsHandler exposes interview scheduling, prep packs and evaluations.
type InterviewsHandler struct {
	interviews *service.InterviewsService
}

// NewInterviewsHandler constructs an InterviewsHandler.
func NewInterviewsHandler(interviews *service.InterviewsService) *InterviewsHandler {
	return &InterviewsHandler{interviews: interviews}
}

// List handles GET /api/interviews.
func (h *InterviewsHandler) List(c echo.Context) error {
	interviews, err := h.interviews.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch interviews")
	}
	return Success(c, http.StatusOK, "interviews retrieved", interviews)
}

// Create handles POST /api/interviews.
func (h *InterviewsHandler) Create(c echo.Context) error {
	var req dto.CreateInterviewRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	interview, err := h.interviews.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to schedule interview")
	}
	return Success(c, http.StatusCreated, "interview scheduled", interview)
}

// Update handles PUT /api/interviews/:id.
func (h *InterviewsHandler) Update(c echo.Context) error {
	var req dto.UpdateInterviewRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	interview, err := h.interviews.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update interview")
	}
	return Success(c, http.StatusOK, "interview updated", interview)
}

// Delete handles DELETE /api/interviews/:id.
func (h *InterviewsHandler) Delete(c echo.Context) error {
	if err := h.interviews.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete interview")
	}
	return Success(c, http.StatusOK, "interview deleted", nil)
}

// Prep handles POST /api/interviews/:id/prep.
func (h *InterviewsHandler) Prep(c echo.Context) error {
	var req dto.PrepRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	evaluations, err := h.interviews.Prep(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to generate interview prep")
	}
	return Success(c, http.StatusCreated, "interview prep generated", evaluations)
}

// Evaluations handles GET /api/interviews/:id/evaluations.
func (h *InterviewsHandler) Evaluations(c echo.Context) error {
	evaluations, err := h.interviews.Evaluations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch evaluations")
	}
	return Success(c, http.StatusOK, "evaluations retrieved", evaluations)
}

// UpdateEvaluation handles PUT /api/evaluations/:id.
func (h *InterviewsHandler) UpdateEvaluation(c echo.Context) error {
	var req dto.UpdateEvaluationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	evaluation, err := h.interviews.UpdateEvaluation(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update evaluation")
	}
	return Success(c, http.StatusOK, "evaluation updated", evaluation)
}
