package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// JobsHandler exposes job postings and their dashboards.
type JobsHandler struct {
	jobs *service.JobsService
}

// NewJobsHandler constructs a JobsHandler.
func NewJobsHandler(jobs *service.JobsService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// List handles GET /api/jobs.
func (h *JobsHandler) List(c echo.Context) error {
	jobs, err := h.jobs.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch jobs")
	}
	return Success(c, http.StatusOK, "jobs retrieved", jobs)
}

// Get handles GET /api/jobs/:id.
func (h *JobsHandler) Get(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch job")
	}
	return Success(c, http.StatusOK, "job retrieved", job)
}

// Create handles POST /api/jobs.
func (h *JobsHandler) Create(c echo.Context) error {
	var req dto.JobRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	job, err := h.jobs.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create job")
	}
	return Success(c, http.StatusCreated, "job created", job)
}

// Update handles PUT /api/jobs/:id.
func (h *JobsHandler) Update(c echo.Context) error {
	var req dto.JobRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	job, err := h.jobs.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update job")
	}
	return Success(c, http.StatusOK, "job updated", job)
}

// Delete handles DELETE /api/jobs/:id.
func (h *JobsHandler) Delete(c echo.Context) error {
	if err := h.jobs.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete job")
	}
	return Success(c, http.StatusOK, "job deleted", nil)
}

// Parse handles POST /api/jobs/parse.
func (h *JobsHandler) Parse(c echo.Context) error {
	var req dto.ParseJobRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	parsed, err := h.jobs.Parse(c.Request().Context(), req.JobText)
	if err != nil {
		return respondError(c, err, "failed to parse job description")
	}
	return Success(c, http.StatusOK, "job parsed", parsed)
}

// Dashboard handles GET /api/jobs/:id/dashboard.
func (h *JobsHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.jobs.Dashboard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch job dashboard")
	}
	return Success(c, http.StatusOK, "job dashboard retrieved", dashboard)
}
