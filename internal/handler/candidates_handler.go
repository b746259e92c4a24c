package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/service"
)

// CandidatesHandler exposes candidate records, resume upload and analysis.
type CandidatesHandler struct {
	candidates     *service.CandidatesService
	uploadMaxBytes int64
}

// NewCandidatesHandler constructs a CandidatesHandler. Resumes larger than
// uploadMaxBytes are rejected.
func NewCandidatesHandler(candidates *service.CandidatesService, uploadMaxBytes int64) *CandidatesHandler {
	return &CandidatesHandler{candidates: candidates, uploadMaxBytes: uploadMaxBytes}
}

// List handles GET /api/candidates.
func (h *CandidatesHandler) List(c echo.Context) error {
	candidates, err := h.candidates.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch candidates")
	}
	return Success(c, http.StatusOK, "candidates retrieved", candidates)
}

// Get handles GET /api/candidates/:id.
func (h *CandidatesHandler) Get(c echo.Context) error {
	candidate, err := h.candidates.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch candidate")
	}
	return Success(c, http.StatusOK, "candidate retrieved", candidate)
}

// Create handles POST /api/candidates.
func (h *CandidatesHandler) Create(c echo.Context) error {
	var req dto.CreateCandidateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	candidate, err := h.candidates.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create candidate")
	}
	return Success(c, http.StatusCreated, "candidate created", candidate)
}

// Update handles PUT /api/candidates/:id.
func (h *CandidatesHandler) Update(c echo.Context) error {
	var req dto.UpdateCandidateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	candidate, err := h.candidates.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update candidate")
	}
	return Success(c, http.StatusOK, "candidate updated", candidate)
}

// Delete handles DELETE /api/candidates/:id.
func (h *CandidatesHandler) Delete(c echo.Context) error {
	if err := h.candidates.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete candidate")
	}
	return Success(c, http.StatusOK, "candidate deleted", nil)
}

// Upload handles POST /api/candidates/upload with a multipart "resume" file and
// an optional jobId (or job_id) field.
func (h *CandidatesHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return Error(c, http.StatusBadRequest, "resume file is required")
	}
	if h.uploadMaxBytes > 0 && fileHeader.Size > h.uploadMaxBytes {
		return Error(c, http.StatusRequestEntityTooLarge, "resume file is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	jobID := strings.TrimSpace(c.FormValue("jobId"))
	if jobID == "" {
		jobID = strings.TrimSpace(c.FormValue("job_id"))
	}
	var jobRef *string
	if jobID != "" {
		jobRef = &jobID
	}

	candidate, err := h.candidates.Upload(c.Request().Context(), fileHeader.Filename, file, jobRef)
	if err != nil {
		return respondError(c, err, "failed to process resume")
	}
	return Success(c, http.StatusCreated, "resume processed", candidate)
}

// Analyze handles POST /api/candidates/:id/analyze. The body may name a job_id
// to assess against instead of the candidate's own job.
func (h *CandidatesHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeCandidateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	analysis, err := h.candidates.Analyze(c.Request().Context(), c.Param("id"), req.JobID)
	if err != nil {
		return respondError(c, err, "failed to analyze candidate")
	}
	return Success(c, http.StatusOK, "candidate analyzed", analysis)
}
