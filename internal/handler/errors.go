package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/middleware"
	"github.com/octobees/hireloop/api/internal/repository"
	"github.com/octobees/hireloop/api/internal/service"
)

var notFoundErrors = []error{
	repository.ErrJobNotFound,
	repository.ErrCandidateNotFound,
	repository.ErrInterviewNotFound,
	repository.ErrEvaluationNotFound,
	repository.ErrOutreachNotFound,
	repository.ErrTemplateNotFound,
	repository.ErrShortlistEntryNotFound,
	repository.ErrUserNotFound,
}

// respondError maps service and repository errors onto the envelope. Anything
// unrecognised is logged and reported as a 500 carrying fallback.
func respondError(c echo.Context, err error, fallback string) error {
	var vErr service.ValidationError
	if errors.As(err, &vErr) {
		return Error(c, http.StatusBadRequest, vErr.Message)
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return Error(c, http.StatusNotFound, target.Error())
		}
	}

	switch {
	case errors.Is(err, repository.ErrInvalidReference):
		return Error(c, http.StatusBadRequest, repository.ErrInvalidReference.Error())
	case errors.Is(err, repository.ErrEmailDuplicate), errors.Is(err, service.ErrEmailAlreadyExists):
		return Error(c, http.StatusConflict, "email already exists")
	case errors.Is(err, llm.ErrNotConfigured):
		return Error(c, http.StatusServiceUnavailable, llm.ErrNotConfigured.Error())
	}

	log.Printf("request_id=%s method=%s path=%s error=%v", middleware.RequestIDFromContext(c), c.Request().Method, c.Path(), err)
	return Error(c, http.StatusInternalServerError, fallback)
}
