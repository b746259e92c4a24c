package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
)

const (
	// HealthTarget is the candidate count at which a pipeline scores 100.
	HealthTarget = 30

	defaultSourcingThreshold = 70
)

// Pipeline health statuses.
const (
	HealthHealthy  = "healthy"
	HealthAtRisk   = "at-risk"
	HealthCritical = "critical"
)

// HealthScore grades a pipeline holding total candidates. The score is
// min(100, total/HealthTarget*100); the bucket is decided before rounding.
func HealthScore(total int) (int, string) {
	score := math.Min(100, float64(total)/HealthTarget*100)
	status := HealthCritical
	switch {
	case score >= 70:
		status = HealthHealthy
	case score >= 40:
		status = HealthAtRisk
	}
	return int(math.Round(score)), status
}

// HealthMetrics wraps HealthScore in its response shape.
func HealthMetrics(total int) dto.HealthMetrics {
	score, status := HealthScore(total)
	return dto.HealthMetrics{
		Score:            score,
		Status:           status,
		TotalCandidates:  total,
		TargetCandidates: HealthTarget,
	}
}

// JobsService manages job postings and their dashboards.
type JobsService struct {
	jobs       repository.JobsRepository
	candidates repository.CandidatesRepository
	llm        llm.Client
}

// NewJobsService constructs a JobsService.
func NewJobsService(jobs repository.JobsRepository, candidates repository.CandidatesRepository, client llm.Client) *JobsService {
	return &JobsService{jobs: jobs, candidates: candidates, llm: client}
}

// List returns every job, newest first.
func (s *JobsService) List(ctx context.Context) ([]entity.Job, error) {
	return s.jobs.List(ctx)
}

// Get returns one job.
func (s *JobsService) Get(ctx context.Context, id string) (*entity.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

// Create stores a new job. Status defaults to draft and the sourcing threshold to 70.
func (s *JobsService) Create(ctx context.Context, req dto.JobRequest) (*entity.Job, error) {
	job := &entity.Job{
		Status:            entity.JobStatusDraft,
		SourcingThreshold: defaultSourcingThreshold,
		Requirements:      []string{},
		Responsibilities:  []string{},
	}
	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if job.Title == "" {
		return nil, invalidf("title is required")
	}
	if req.Department != nil {
		job.Department = strings.TrimSpace(*req.Department)
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.Type != nil {
		job.Type = strings.TrimSpace(*req.Type)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		job.Status = strings.TrimSpace(*req.Status)
	}
	if !entity.ValidJobStatus(job.Status) {
		return nil, invalidf("invalid status %q", job.Status)
	}
	if req.Requirements != nil {
		job.Requirements = cleanList(*req.Requirements)
	}
	if req.Responsibilities != nil {
		job.Responsibilities = cleanList(*req.Responsibilities)
	}
	if req.DealBreakers != nil {
		job.DealBreakers = *req.DealBreakers
	}
	if req.AutoSourcingEnabled != nil {
		job.AutoSourcingEnabled = *req.AutoSourcingEnabled
	}
	if req.SourcingThreshold != nil {
		if !validScore(*req.SourcingThreshold) {
			return nil, invalidf("sourcing_threshold must be between 0 and 100")
		}
		job.SourcingThreshold = *req.SourcingThreshold
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Update applies the whitelisted fields present in req.
func (s *JobsService) Update(ctx context.Context, id string, req dto.JobRequest) (*entity.Job, error) {
	update := repository.JobUpdate{
		Department:          req.Department,
		Location:            req.Location,
		Type:                req.Type,
		Description:         req.Description,
		DealBreakers:        req.DealBreakers,
		AutoSourcingEnabled: req.AutoSourcingEnabled,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalidf("title cannot be empty")
		}
		update.Title = &title
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !entity.ValidJobStatus(status) {
			return nil, invalidf("invalid status %q", status)
		}
		update.Status = &status
	}
	if req.Requirements != nil {
		list := cleanList(*req.Requirements)
		update.Requirements = &list
	}
	if req.Responsibilities != nil {
		list := cleanList(*req.Responsibilities)
		update.Responsibilities = &list
	}
	if req.SourcingThreshold != nil {
		if !validScore(*req.SourcingThreshold) {
			return nil, invalidf("sourcing_threshold must be between 0 and 100")
		}
		update.SourcingThreshold = req.SourcingThreshold
	}
	if update.Empty() {
		return nil, invalidf("no valid fields to update")
	}
	return s.jobs.Update(ctx, id, update)
}

// Delete removes a job; dependent rows cascade or lose their job reference.
func (s *JobsService) Delete(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}

// Parse asks the model to structure a pasted job description.
func (s *JobsService) Parse(ctx context.Context, text string) (*dto.ParsedJob, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalidf("jobText is required")
	}
	var parsed dto.ParsedJob
	req := llm.Request{System: jobParserSystem, Prompt: jobParserPrompt(text), Temperature: 0.3}
	if err := completeJSON(ctx, s.llm, "parse job", req, &parsed); err != nil {
		return nil, err
	}
	if parsed.Requirements == nil {
		parsed.Requirements = []string{}
	}
	if parsed.Responsibilities == nil {
		parsed.Responsibilities = []string{}
	}
	return &parsed, nil
}

// Dashboard combines the job's pipeline counts and health with generated hiring
// insights. Insights are omitted when no model provider is configured.
func (s *JobsService) Dashboard(ctx context.Context, id string) (*dto.JobDashboard, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.candidates.CountByStage(ctx, &job.ID)
	if err != nil {
		return nil, err
	}

	var insights *dto.JobInsights
	var generated dto.JobInsights
	req := llm.Request{System: jobInsightsSystem, Prompt: jobInsightsPrompt(job), Temperature: 0.4}
	switch err := completeJSON(ctx, s.llm, "job insights", req, &generated); {
	case err == nil:
		insights = &generated
	case errors.Is(err, llm.ErrNotConfigured):
	default:
		return nil, err
	}

	return &dto.JobDashboard{
		Job:        job,
		AIInsights: insights,
		PipelineStats: dto.PipelineStats{
			New:       counts.ByStage[entity.StageNew],
			Screening: counts.ByStage[entity.StageScreening],
			Interview: counts.ByStage[entity.StageInterview],
			Offer:     counts.ByStage[entity.StageOffer],
			Hired:     counts.ByStage[entity.StageHired],
			Rejected:  counts.ByStage[entity.StageRejected],
			Total:     counts.Total,
		},
		HealthMetrics: HealthMetrics(counts.Total),
	}, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validScore(v int) bool {
	return v >= 0 && v <= 100
}
