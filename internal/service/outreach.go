package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/mailer"
	"github.com/octobees/hireloop/api/internal/repository"
)

const (
	defaultEmailType = "initial"
	defaultCategory  = "general"
	defaultCompany   = "HireLoop"
)

// OutreachService drafts, sends and tracks candidate emails.
type OutreachService struct {
	outreach    repository.OutreachRepository
	candidates  repository.CandidatesRepository
	jobs        repository.JobsRepository
	workspace   repository.WorkspaceRepository
	llm         llm.Client
	mailer      mailer.Mailer
	companyName string
}

// NewOutreachService constructs an OutreachService. A nil mailer records emails without delivering them.
func NewOutreachService(
	outreach repository.OutreachRepository,
	candidates repository.CandidatesRepository,
	jobs repository.JobsRepository,
	workspace repository.WorkspaceRepository,
	client llm.Client,
	m mailer.Mailer,
	companyName string,
) *OutreachService {
	return &OutreachService{
		outreach:    outreach,
		candidates:  candidates,
		jobs:        jobs,
		workspace:   workspace,
		llm:         client,
		mailer:      m,
		companyName: orDefault(companyName, defaultCompany),
	}
}

// GenerateEmail drafts an outreach email for a candidate and job. Without a
// model provider a fixed template is filled in instead.
func (s *OutreachService) GenerateEmail(ctx context.Context, req dto.GenerateEmailRequest) (*dto.GeneratedEmail, error) {
	if strings.TrimSpace(req.CandidateID) == "" || strings.TrimSpace(req.JobID) == "" {
		return nil, invalidf("candidateId and jobId are required")
	}
	candidate, err := s.candidates.FindByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	company := s.company(ctx)

	var draft dto.GeneratedEmail
	llmReq := llm.Request{System: emailSystem, Prompt: emailPrompt(candidate, job, orDefault(req.Type, defaultEmailType), company), Temperature: 0.7}
	if err := completeJSON(ctx, s.llm, "generate email", llmReq, &draft); err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return fallbackEmail(candidate, job, company), nil
		}
		return nil, err
	}
	return &draft, nil
}

// company prefers the name saved in settings over the configured default.
func (s *OutreachService) company(ctx context.Context) string {
	settings, err := s.workspace.GetSettings(ctx)
	if err != nil {
		log.Printf("outreach: load settings: %v", err)
		return s.companyName
	}
	if settings != nil && settings.CompanyName != nil && strings.TrimSpace(*settings.CompanyName) != "" {
		return strings.TrimSpace(*settings.CompanyName)
	}
	return s.companyName
}

func fallbackEmail(c *entity.Candidate, job *entity.Job, company string) *dto.GeneratedEmail {
	first := strings.Fields(c.Name)
	greeting := "Hi there,"
	if len(first) > 0 && c.Name != unknownName {
		greeting = "Hi " + first[0] + ","
	}
	body := fmt.Sprintf("%s\n\nI came across your background", greeting)
	if c.Role != "" && c.Role != unknownRole {
		body += " as " + c.Role
	}
	body += fmt.Sprintf(" and thought you could be a great fit for the %s role at %s.\n\n", job.Title, company)
	body += "Would you be open to a short call this week to talk about it?\n\n"
	body += fmt.Sprintf("Best regards,\nThe %s recruiting team", company)
	return &dto.GeneratedEmail{
		Subject: fmt.Sprintf("%s opportunity at %s", job.Title, company),
		Body:    body,
	}
}

// ListEmails returns every recorded email, most recently sent first.
func (s *OutreachService) ListEmails(ctx context.Context) ([]entity.OutreachEmail, error) {
	return s.outreach.ListEmails(ctx)
}

// CreateEmail records an outreach email and, when its status is sent, delivers
// it to the candidate. A failed delivery is stored with status failed.
func (s *OutreachService) CreateEmail(ctx context.Context, req dto.CreateOutreachEmailRequest) (*entity.OutreachEmail, error) {
	if strings.TrimSpace(req.CandidateID) == "" {
		return nil, invalidf("candidateId is required")
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, invalidf("subject and body are required")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.OutreachSent
	}
	if status != entity.OutreachSent && status != entity.OutreachDraft {
		return nil, invalidf("status must be sent or draft")
	}
	sequenceDay := 0
	if req.SequenceDay != nil {
		if *req.SequenceDay < 0 {
			return nil, invalidf("sequence_day cannot be negative")
		}
		sequenceDay = *req.SequenceDay
	}

	candidate, err := s.candidates.FindByID(ctx, strings.TrimSpace(req.CandidateID))
	if err != nil {
		return nil, err
	}

	email := &entity.OutreachEmail{
		CandidateID: candidate.ID,
		JobID:       nonEmpty(req.JobID),
		SequenceDay: sequenceDay,
		Subject:     req.Subject,
		Body:        req.Body,
		Status:      status,
	}
	if err := s.outreach.CreateEmail(ctx, email); err != nil {
		return nil, err
	}

	if status == entity.OutreachSent && s.mailer != nil {
		msg := mailer.Message{To: candidate.Email, Subject: email.Subject, Body: email.Body}
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.Printf("outreach: deliver email=%s to=%s error=%v", email.ID, candidate.Email, err)
			return s.outreach.UpdateEmailStatus(ctx, email.ID, entity.OutreachFailed)
		}
	}
	return email, nil
}

// UpdateEmailStatus records an open, a reply or a manual status change.
func (s *OutreachService) UpdateEmailStatus(ctx context.Context, id, status string) (*entity.OutreachEmail, error) {
	status = strings.TrimSpace(status)
	switch status {
	case entity.OutreachSent, entity.OutreachOpened, entity.OutreachReplied, entity.OutreachFailed, entity.OutreachDraft:
	default:
		return nil, invalidf("invalid status %q", status)
	}
	return s.outreach.UpdateEmailStatus(ctx, id, status)
}

// DeleteEmail removes a recorded email.
func (s *OutreachService) DeleteEmail(ctx context.Context, id string) error {
	return s.outreach.DeleteEmail(ctx, id)
}

// TemplatesService manages reusable outreach templates.
type TemplatesService struct {
	repo repository.OutreachRepository
}

// NewTemplatesService constructs a TemplatesService.
func NewTemplatesService(repo repository.OutreachRepository) *TemplatesService {
	return &TemplatesService{repo: repo}
}

// List returns every template.
func (s *TemplatesService) List(ctx context.Context) ([]entity.EmailTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

// Create stores a template. Category defaults to general.
func (s *TemplatesService) Create(ctx context.Context, req dto.TemplateRequest) (*entity.EmailTemplate, error) {
	tpl := templateFromRequest(req)
	if tpl.Name == "" || tpl.Subject == "" || tpl.Body == "" {
		return nil, invalidf("name, subject and body are required")
	}
	if tpl.Category == "" {
		tpl.Category = defaultCategory
	}
	if err := s.repo.CreateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Update replaces every field of a template.
func (s *TemplatesService) Update(ctx context.Context, id string, req dto.TemplateRequest) (*entity.EmailTemplate, error) {
	tpl := templateFromRequest(req)
	if tpl.Name == "" || tpl.Subject == "" || tpl.Body == "" || tpl.Category == "" {
		return nil, invalidf("name, subject, body and category are required")
	}
	tpl.ID = id
	if err := s.repo.UpdateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete removes a template.
func (s *TemplatesService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteTemplate(ctx, id)
}

func templateFromRequest(req dto.TemplateRequest) *entity.EmailTemplate {
	return &entity.EmailTemplate{
		Name:     strings.TrimSpace(req.Name),
		Subject:  strings.TrimSpace(req.Subject),
		Body:     req.Body,
		Category: strings.TrimSpace(req.Category),
	}
}
