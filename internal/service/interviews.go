package service

import (
	"context"
	"strings"
	"time"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
)

const (
	defaultPrepCount = 5
	maxPrepCount     = 10
	defaultPrepType  = "behavioral"
)

// timeLayouts are accepted for interview times, in order. The last one is what
// HTML datetime-local inputs send and is read as UTC.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// InterviewsService schedules interviews and builds their prep packs.
type InterviewsService struct {
	interviews repository.InterviewsRepository
	candidates repository.CandidatesRepository
	jobs       repository.JobsRepository
	llm        llm.Client
	normalizer *Normalizer
}

// NewInterviewsService constructs an InterviewsService.
func NewInterviewsService(interviews repository.InterviewsRepository, candidates repository.CandidatesRepository, jobs repository.JobsRepository, client llm.Client, normalizer *Normalizer) *InterviewsService {
	return &InterviewsService{interviews: interviews, candidates: candidates, jobs: jobs, llm: client, normalizer: normalizer}
}

// List returns every interview ordered by start time.
func (s *InterviewsService) List(ctx context.Context) ([]entity.Interview, error) {
	return s.interviews.List(ctx)
}

// Create schedules an interview. Status defaults to scheduled.
func (s *InterviewsService) Create(ctx context.Context, req dto.CreateInterviewRequest) (*entity.Interview, error) {
	candidateID := strings.TrimSpace(req.CandidateID)
	if candidateID == "" || strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return nil, invalidf("candidate_id, start_time and end_time are required")
	}
	start, err := parseTime("start_time", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("end_time", req.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, invalidf("end_time must be after start_time")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.InterviewScheduled
	}
	if !validInterviewStatus(status) {
		return nil, invalidf("invalid status %q", status)
	}

	interview := &entity.Interview{
		CandidateID: candidateID,
		JobID:       nonEmpty(req.JobID),
		StartTime:   repository.FormatTimestamp(start),
		EndTime:     repository.FormatTimestamp(end),
		Status:      status,
	}
	if req.VideoLink != nil && strings.TrimSpace(*req.VideoLink) != "" {
		link, err := s.normalizer.URL(*req.VideoLink)
		if err != nil {
			return nil, invalidf("invalid video_link")
		}
		interview.VideoLink = &link
	}

	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// Update reschedules, relinks or closes an interview.
func (s *InterviewsService) Update(ctx context.Context, id string, req dto.UpdateInterviewRequest) (*entity.Interview, error) {
	var update repository.InterviewUpdate
	var start, end *time.Time

	if req.StartTime != nil {
		t, err := parseTime("start_time", *req.StartTime)
		if err != nil {
			return nil, err
		}
		formatted := repository.FormatTimestamp(t)
		update.StartTime, start = &formatted, &t
	}
	if req.EndTime != nil {
		t, err := parseTime("end_time", *req.EndTime)
		if err != nil {
			return nil, err
		}
		formatted := repository.FormatTimestamp(t)
		update.EndTime, end = &formatted, &t
	}
	if req.VideoLink != nil {
		link := strings.TrimSpace(*req.VideoLink)
		if link != "" {
			normalized, err := s.normalizer.URL(link)
			if err != nil {
				return nil, invalidf("invalid video_link")
			}
			link = normalized
		}
		update.VideoLink = &link
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !validInterviewStatus(status) {
			return nil, invalidf("invalid status %q", status)
		}
		update.Status = &status
	}
	if update.StartTime == nil && update.EndTime == nil && update.VideoLink == nil && update.Status == nil {
		return nil, invalidf("no valid fields to update")
	}

	if start != nil || end != nil {
		current, err := s.interviews.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if start == nil {
			t, _ := time.Parse(repository.TimestampLayout, current.StartTime)
			start = &t
		}
		if end == nil {
			t, _ := time.Parse(repository.TimestampLayout, current.EndTime)
			end = &t
		}
		if !end.After(*start) {
			return nil, invalidf("end_time must be after start_time")
		}
	}

	return s.interviews.Update(ctx, id, update)
}

// Delete removes an interview and its prep pack.
func (s *InterviewsService) Delete(ctx context.Context, id string) error {
	return s.interviews.Delete(ctx, id)
}

// Prep generates a question pack for the interview, replacing any previous one.
func (s *InterviewsService) Prep(ctx context.Context, id string, req dto.PrepRequest) ([]entity.Evaluation, error) {
	count := defaultPrepCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 {
		return nil, invalidf("count must be at least 1")
	}
	if count > maxPrepCount {
		count = maxPrepCount
	}
	kind := orDefault(req.Type, defaultPrepType)

	interview, err := s.interviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidates.FindByID(ctx, interview.CandidateID)
	if err != nil {
		return nil, err
	}
	jobID := interview.JobID
	if jobID == nil {
		jobID = candidate.JobID
	}
	var job *entity.Job
	if jobID != nil {
		if job, err = s.jobs.FindByID(ctx, *jobID); err != nil {
			return nil, err
		}
	}

	var pack struct {
		Questions []dto.PrepQuestion `json:"questions"`
	}
	llmReq := llm.Request{System: prepSystem, Prompt: prepPrompt(candidate, job, count, kind), Temperature: 0.5}
	if err := completeJSON(ctx, s.llm, "interview prep", llmReq, &pack); err != nil {
		return nil, err
	}

	evaluations := make([]*entity.Evaluation, 0, count)
	for _, q := range pack.Questions {
		if len(evaluations) == count {
			break
		}
		question := strings.TrimSpace(q.Question)
		if question == "" {
			continue
		}
		evaluations = append(evaluations, &entity.Evaluation{
			Question:  question,
			Criterion: strings.TrimSpace(q.Criterion),
			ListenFor: optional(q.ListenFor),
		})
	}

	if err := s.interviews.ReplaceEvaluations(ctx, interview.ID, evaluations); err != nil {
		return nil, err
	}
	return s.interviews.ListEvaluations(ctx, interview.ID)
}

// Evaluations returns the prep pack of an interview.
func (s *InterviewsService) Evaluations(ctx context.Context, id string) ([]entity.Evaluation, error) {
	if _, err := s.interviews.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.interviews.ListEvaluations(ctx, id)
}

// UpdateEvaluation records a 1-5 rating and notes for a prep question.
func (s *InterviewsService) UpdateEvaluation(ctx context.Context, id string, req dto.UpdateEvaluationRequest) (*entity.Evaluation, error) {
	if req.Rating == nil && req.Notes == nil {
		return nil, invalidf("rating or notes is required")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, invalidf("rating must be between 1 and 5")
	}
	return s.interviews.UpdateEvaluation(ctx, id, req.Rating, req.Notes)
}

func parseTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalidf("%s must be an RFC 3339 timestamp", field)
}

func validInterviewStatus(status string) bool {
	switch status {
	case entity.InterviewScheduled, entity.InterviewCompleted, entity.InterviewCancelled:
		return true
	}
	return false
}
