package service

import (
	"context"
	"strings"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
)

// ShortlistService evaluates candidates against a job and tracks the shortlist.
type ShortlistService struct {
	shortlist  repository.ShortlistRepository
	jobs       repository.JobsRepository
	candidates repository.CandidatesRepository
	llm        llm.Client
}

// NewShortlistService constructs a ShortlistService.
func NewShortlistService(shortlist repository.ShortlistRepository, jobs repository.JobsRepository, candidates repository.CandidatesRepository, client llm.Client) *ShortlistService {
	return &ShortlistService{shortlist: shortlist, jobs: jobs, candidates: candidates, llm: client}
}

// List returns a job's shortlist, best match first.
func (s *ShortlistService) List(ctx context.Context, jobID string) ([]entity.JobCandidate, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.shortlist.ListByJob(ctx, jobID)
}

// Evaluate scores a candidate for the job and records the result on both the
// shortlist and the candidate. Scores at or above the job's sourcing threshold
// are shortlisted.
func (s *ShortlistService) Evaluate(ctx context.Context, jobID, candidateID string) (*entity.JobCandidate, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return nil, invalidf("candidate_id is required")
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	var fit dto.FitEvaluation
	req := llm.Request{System: fitSystem, Prompt: fitPrompt(candidate, job), Temperature: 0.3}
	if err := completeJSON(ctx, s.llm, "evaluate fit", req, &fit); err != nil {
		return nil, err
	}

	overall := clampScore(fit.Overall)
	status := entity.ShortlistReviewed
	if overall >= job.SourcingThreshold {
		status = entity.ShortlistShortlisted
	}
	entry := &entity.JobCandidate{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		MatchScore:  &overall,
		Strengths:   cleanList(fit.Strengths),
		Gaps:        cleanList(fit.Concerns),
		Status:      status,
	}
	breakdown := fit.Breakdown
	if breakdown == nil {
		breakdown = map[string]any{}
	}
	if fit.Reasoning != "" {
		breakdown["reasoning"] = fit.Reasoning
	}
	if err := s.shortlist.RecordEvaluation(ctx, entry, breakdown); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateStatus moves a shortlist entry.
func (s *ShortlistService) UpdateStatus(ctx context.Context, jobID, candidateID, status string) (*entity.JobCandidate, error) {
	status = strings.TrimSpace(status)
	if !entity.ValidShortlistStatus(status) {
		return nil, invalidf("invalid status %q", status)
	}
	return s.shortlist.UpdateStatus(ctx, jobID, candidateID, status)
}
