package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// ScorecardsHandler exposes interviewer scorecards.
type ScorecardsHandler struct {
	scorecards *service.ScorecardsService
}

// NewScorecardsHandler constructs a ScorecardsHandler.
func NewScorecardsHandler(scorecards *service.ScorecardsService) *ScorecardsHandler {
	return &ScorecardsHandler{scorecards: scorecards}
}

// List handles GET /api/scorecards and GET /api/scorecards/:candidateId.
func (h *ScorecardsHandler) List(c echo.Context) error {
	scorecards, err := h.scorecards.List(c.Request().Context(), c.Param("candidateId"))
	if err != nil {
		return respondError(c, err, "failed to fetch scorecards")
	}
	return Success(c, http.StatusOK, "scorecards retrieved", scorecards)
}

// Create handles POST /api/scorecards.
func (h *ScorecardsHandler) Create(c echo.Context) error {
	var req dto.CreateScorecardRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	scorecard, err := h.scorecards.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create scorecard")
	}
	return Success(c, http.StatusCreated, "scorecard created", scorecard)
}
