package service

import (
	"context"
	"strings"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/repository"
)

// ScorecardsService records interviewer scorecards.
type ScorecardsService struct {
	repo repository.ScorecardsRepository
}

// NewScorecardsService constructs a ScorecardsService.
func NewScorecardsService(repo repository.ScorecardsRepository) *ScorecardsService {
	return &ScorecardsService{repo: repo}
}

// List returns every scorecard, or only a candidate's when candidateID is set.
func (s *ScorecardsService) List(ctx context.Context, candidateID string) ([]entity.Scorecard, error) {
	if candidateID = strings.TrimSpace(candidateID); candidateID != "" {
		return s.repo.ListByCandidate(ctx, candidateID)
	}
	return s.repo.List(ctx)
}

// Create appends a scorecard.
func (s *ScorecardsService) Create(ctx context.Context, req dto.CreateScorecardRequest) (*entity.Scorecard, error) {
	sc := &entity.Scorecard{
		CandidateID:   strings.TrimSpace(req.CandidateID),
		JobID:         strings.TrimSpace(req.JobID),
		Stage:         strings.TrimSpace(req.Stage),
		Scores:        req.Scores,
		Feedback:      req.Feedback,
		InterviewerID: nonEmpty(req.InterviewerID),
	}
	if sc.CandidateID == "" || sc.JobID == "" || sc.Stage == "" {
		return nil, invalidf("candidateId, jobId and stage are required")
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}
