package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
)

const (
	sourcedPerRun  = 3
	sourcingSource = "AI Sourcing"
)

// SourcingService generates candidate profiles for a job.
type SourcingService struct {
	jobs       repository.JobsRepository
	candidates repository.CandidatesRepository
	llm        llm.Client
	normalizer *Normalizer
}

// NewSourcingService constructs a SourcingService.
func NewSourcingService(jobs repository.JobsRepository, candidates repository.CandidatesRepository, client llm.Client, normalizer *Normalizer) *SourcingService {
	return &SourcingService{jobs: jobs, candidates: candidates, llm: client, normalizer: normalizer}
}

// Run asks the model for candidate profiles matching the job and stores them,
// together with their shortlist entries, in one transaction.
func (s *SourcingService) Run(ctx context.Context, jobID string) ([]entity.Candidate, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, invalidf("jobId is required")
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var result struct {
		Candidates []dto.SourcedProfile `json:"candidates"`
	}
	req := llm.Request{System: sourcingSystem, Prompt: sourcingPrompt(job, sourcedPerRun)}
	if err := completeJSON(ctx, s.llm, "source candidates", req, &result); err != nil {
		return nil, err
	}
	profiles := result.Candidates
	if len(profiles) > sourcedPerRun {
		profiles = profiles[:sourcedPerRun]
	}

	candidates := make([]*entity.Candidate, 0, len(profiles))
	shortlist := make([]*entity.JobCandidate, 0, len(profiles))
	for _, p := range profiles {
		c := s.fromProfile(ctx, job, p)
		status := entity.ShortlistSourced
		if *c.FitScore >= job.SourcingThreshold {
			status = entity.ShortlistShortlisted
		}
		candidates = append(candidates, c)
		shortlist = append(shortlist, &entity.JobCandidate{
			JobID:       job.ID,
			CandidateID: c.ID,
			MatchScore:  c.FitScore,
			Strengths:   []string{},
			Gaps:        []string{},
			Status:      status,
		})
	}

	if len(candidates) > 0 {
		if err := s.candidates.CreateBatch(ctx, candidates, shortlist); err != nil {
			return nil, err
		}
	}

	out := make([]entity.Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, *c)
	}
	return out, nil
}

func (s *SourcingService) fromProfile(ctx context.Context, job *entity.Job, p dto.SourcedProfile) *entity.Candidate {
	id := uuid.NewString()
	score := clampScore(float64(p.FitScore))
	years := int(float64(p.YearsOfExperience) + 0.5)
	c := &entity.Candidate{
		ID:                id,
		JobID:             &job.ID,
		Name:              orDefault(string(p.Name), unknownName),
		Role:              orDefault(string(p.Role), unknownRole),
		Location:          optional(string(p.Location)),
		Skills:            cleanList(p.Skills),
		Experience:        p.Experience,
		Education:         p.Education,
		YearsOfExperience: &years,
		Stage:             entity.StageNew,
		FitScore:          &score,
		Source:            sourcingSource,
	}
	email, err := s.normalizer.Email(ctx, string(p.Email))
	if err != nil {
		email = "unknown-" + id + "@" + unknownMailHost
	}
	c.Email = email
	return c
}
