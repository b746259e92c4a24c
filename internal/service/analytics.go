package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/repository"
)

const recentActivityLimit = 10

// AnalyticsService aggregates workspace-wide hiring metrics.
type AnalyticsService struct {
	jobs       repository.JobsRepository
	candidates repository.CandidatesRepository
	interviews repository.InterviewsRepository
	now        func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(jobs repository.JobsRepository, candidates repository.CandidatesRepository, interviews repository.InterviewsRepository) *AnalyticsService {
	return &AnalyticsService{jobs: jobs, candidates: candidates, interviews: interviews, now: time.Now}
}

// Overview computes the analytics dashboard.
func (s *AnalyticsService) Overview(ctx context.Context) (*dto.AnalyticsOverview, error) {
	counts, err := s.candidates.CountByStage(ctx, nil)
	if err != nil {
		return nil, err
	}
	activeJobs, err := s.jobs.CountByStatus(ctx, entity.JobStatusPublished)
	if err != nil {
		return nil, err
	}
	avg, err := s.candidates.AverageFitScore(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.interviews.CountUpcoming(ctx, repository.FormatTimestamp(s.now()))
	if err != nil {
		return nil, err
	}
	activity, err := s.recentActivity(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := make(map[string]int, len(entity.Stages))
	for _, stage := range entity.Stages {
		pipeline[stage] = counts.ByStage[stage]
	}

	return &dto.AnalyticsOverview{
		TotalCandidates:    counts.Total,
		ActiveJobs:         activeJobs,
		Pipeline:           pipeline,
		AverageFitScore:    math.Round(avg*10) / 10,
		PipelineHealth:     HealthMetrics(counts.Total),
		UpcomingInterviews: upcoming,
		RecentActivity:     activity,
	}, nil
}

// recentActivity merges the latest applications and interviews, newest first.
func (s *AnalyticsService) recentActivity(ctx context.Context) ([]dto.Activity, error) {
	candidates, err := s.candidates.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviews.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(candidates))
	activity := make([]dto.Activity, 0, len(candidates)+len(interviews))
	for _, c := range candidates {
		names[c.ID] = c.Name
		description := c.Name + " applied"
		if c.Role != "" {
			description += " as " + c.Role
		}
		activity = append(activity, dto.Activity{Type: "application", ID: c.ID, Description: description, Timestamp: c.CreatedAt})
	}
	for _, iv := range interviews {
		description := "Interview scheduled"
		if name, ok := names[iv.CandidateID]; ok {
			description = fmt.Sprintf("Interview scheduled with %s", name)
		}
		activity = append(activity, dto.Activity{Type: "interview", ID: iv.ID, Description: description, Timestamp: iv.CreatedAt})
	}

	// Timestamps share one fixed-width layout, so string order is time order.
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}
	return activity, nil
}
