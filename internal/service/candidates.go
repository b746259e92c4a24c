package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
	"github.com/octobees/hireloop/api/internal/resume"
)

const (
	uploadFitScore  = 70
	uploadSource    = "Resume Upload"
	unknownName     = "Unknown"
	unknownRole     = "General Position"
	manualSource    = "Direct Application"
	unknownMailHost = "example.com"
)

// CandidatesService manages candidates and their AI-assisted intake.
type CandidatesService struct {
	candidates repository.CandidatesRepository
	jobs       repository.JobsRepository
	llm        llm.Client
	normalizer *Normalizer
}

// NewCandidatesService constructs a CandidatesService.
func NewCandidatesService(candidates repository.CandidatesRepository, jobs repository.JobsRepository, client llm.Client, normalizer *Normalizer) *CandidatesService {
	return &CandidatesService{candidates: candidates, jobs: jobs, llm: client, normalizer: normalizer}
}

// List returns every candidate, newest first.
func (s *CandidatesService) List(ctx context.Context) ([]entity.Candidate, error) {
	return s.candidates.List(ctx)
}

// Get returns one candidate.
func (s *CandidatesService) Get(ctx context.Context, id string) (*entity.Candidate, error) {
	return s.candidates.FindByID(ctx, id)
}

// Create stores a manually entered candidate.
func (s *CandidatesService) Create(ctx context.Context, req dto.CreateCandidateRequest) (*entity.Candidate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	email, err := s.normalizer.Email(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	stage := strings.TrimSpace(req.Stage)
	if stage == "" {
		stage = entity.StageNew
	}
	if !entity.ValidStage(stage) {
		return nil, invalidf("invalid stage %q", stage)
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = manualSource
	}

	candidate := &entity.Candidate{
		JobID:             nonEmpty(req.JobID),
		Name:              name,
		Email:             email,
		Role:              strings.TrimSpace(req.Role),
		Location:          nonEmpty(req.Location),
		Skills:            cleanList(req.Skills),
		Experience:        req.Experience,
		Education:         req.Education,
		YearsOfExperience: req.YearsOfExperience,
		Stage:             stage,
		Source:            source,
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		phone := s.normalizer.Phone(*req.Phone)
		candidate.Phone = &phone
	}

	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Upload extracts a resume, has the model structure it, and stores the result as
// a new candidate with a provisional fit score.
func (s *CandidatesService) Upload(ctx context.Context, filename string, r io.Reader, jobID *string) (*entity.Candidate, error) {
	text, err := resume.ExtractText(filename, r)
	if err != nil {
		return nil, invalidf("unable to read resume: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalidf("resume is empty")
	}

	log.Printf("resume upload: file=%q original_length=%d", filename, utf8.RuneCountInString(text))
	text, truncated := resume.Truncate(text)
	log.Printf("resume upload: file=%q parsed_length=%d truncated=%t", filename, utf8.RuneCountInString(text), truncated)

	var parsed dto.ParsedResume
	req := llm.Request{System: resumeParserSystem, Prompt: resumeParserPrompt(text), Temperature: 0.3}
	if err := completeJSON(ctx, s.llm, "parse resume", req, &parsed); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	candidate := &entity.Candidate{
		ID:         id,
		JobID:      nonEmpty(jobID),
		Name:       orDefault(string(parsed.Name), unknownName),
		Role:       orDefault(string(parsed.Role), unknownRole),
		Location:   optional(string(parsed.Location)),
		Skills:     cleanList(parsed.Skills),
		Experience: parsed.Experience,
		Education:  parsed.Education,
		Stage:      entity.StageNew,
		Source:     uploadSource,
		ResumeText: &text,
	}
	candidate.Email, err = s.normalizer.Email(ctx, string(parsed.Email))
	if err != nil {
		candidate.Email = "unknown-" + id + "@" + unknownMailHost
	}
	if phone := strings.TrimSpace(string(parsed.Phone)); phone != "" {
		phone = s.normalizer.Phone(phone)
		candidate.Phone = &phone
	}
	years := int(float64(parsed.YearsOfExperience) + 0.5)
	candidate.YearsOfExperience = &years
	score := uploadFitScore
	candidate.FitScore = &score

	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Update changes the stage or fit score of a candidate, leaving other fields alone.
func (s *CandidatesService) Update(ctx context.Context, id string, req dto.UpdateCandidateRequest) (*entity.Candidate, error) {
	update := repository.CandidateUpdate{FitScoreBreakdown: req.FitScoreBreakdown}
	if req.Stage != nil {
		stage := strings.TrimSpace(*req.Stage)
		if !entity.ValidStage(stage) {
			return nil, invalidf("invalid stage %q", stage)
		}
		update.Stage = &stage
	}
	if req.FitScore != nil {
		if !validScore(*req.FitScore) {
			return nil, invalidf("fit_score must be between 0 and 100")
		}
		update.FitScore = req.FitScore
	}
	if update.Stage == nil && update.FitScore == nil && update.FitScoreBreakdown == nil {
		return nil, invalidf("no valid fields to update")
	}
	return s.candidates.Update(ctx, id, update)
}

// Delete removes a candidate with its interviews, scorecards and emails.
func (s *CandidatesService) Delete(ctx context.Context, id string) error {
	return s.candidates.Delete(ctx, id)
}

// Analyze assesses a candidate against a job: the one named by jobID, or else the
// candidate's own. Nothing is stored.
func (s *CandidatesService) Analyze(ctx context.Context, id string, jobID *string) (*dto.CandidateAnalysis, error) {
	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	targetID := nonEmpty(jobID)
	if targetID == nil {
		targetID = candidate.JobID
	}
	var job *entity.Job
	if targetID != nil {
		job, err = s.jobs.FindByID(ctx, *targetID)
		if err != nil && !(errors.Is(err, repository.ErrJobNotFound) && jobID == nil) {
			return nil, err
		}
	}

	var analysis dto.CandidateAnalysis
	req := llm.Request{System: analysisSystem, Prompt: analysisPrompt(candidate, job), Temperature: 0.4}
	if err := completeJSON(ctx, s.llm, "analyze candidate", req, &analysis); err != nil {
		return nil, err
	}
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Gaps == nil {
		analysis.Gaps = []string{}
	}
	if analysis.DealBreakerCheck.Details == nil {
		analysis.DealBreakerCheck.Details = []string{}
	}
	return &analysis, nil
}

func nonEmpty(value *string) *string {
	if value == nil {
		return nil
	}
	return optional(*value)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value == "" {
		return fallback
	}
	return value
}
