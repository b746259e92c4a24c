package service

import (
	"context"
	"strings"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/repository"
)

// WorkspaceService covers settings, integrations and the public contact form.
type WorkspaceService struct {
	repo       repository.WorkspaceRepository
	normalizer *Normalizer
}

// NewWorkspaceService constructs a WorkspaceService.
func NewWorkspaceService(repo repository.WorkspaceRepository, normalizer *Normalizer) *WorkspaceService {
	return &WorkspaceService{repo: repo, normalizer: normalizer}
}

// Settings returns the saved settings, or nil before the first save.
func (s *WorkspaceService) Settings(ctx context.Context) (*entity.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// SaveSettings merges req into the stored settings and saves them.
func (s *WorkspaceService) SaveSettings(ctx context.Context, req dto.SettingsRequest) (*entity.Settings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.Settings{}
	}

	if req.CompanyName != nil {
		settings.CompanyName = optional(*req.CompanyName)
	}
	if req.Website != nil {
		settings.Website = nil
		if strings.TrimSpace(*req.Website) != "" {
			website, err := s.normalizer.URL(*req.Website)
			if err != nil {
				return nil, invalidf("invalid website")
			}
			settings.Website = &website
		}
	}
	if req.AutoRejectThreshold != nil {
		settings.AutoRejectThreshold = optional(*req.AutoRejectThreshold)
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Integrations lists the known integrations.
func (s *WorkspaceService) Integrations(ctx context.Context) ([]entity.Integration, error) {
	return s.repo.ListIntegrations(ctx)
}

// SaveIntegration connects or disconnects an integration, creating it on first use.
func (s *WorkspaceService) SaveIntegration(ctx context.Context, req dto.IntegrationRequest) (*entity.Integration, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, invalidf("id is required")
	}
	status := strings.TrimSpace(req.Status)
	if status != entity.IntegrationConnected && status != entity.IntegrationDisconnected {
		return nil, invalidf("status must be connected or disconnected")
	}
	in := &entity.Integration{
		ID:     id,
		Name:   orDefault(req.Name, id),
		Status: status,
		Config: req.Config,
	}
	if err := s.repo.UpsertIntegration(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// SubmitContact stores a contact form message.
func (s *WorkspaceService) SubmitContact(ctx context.Context, req dto.ContactRequest) (*entity.ContactRequest, error) {
	name := strings.TrimSpace(req.Name)
	message := strings.TrimSpace(req.Message)
	if name == "" || strings.TrimSpace(req.Email) == "" || message == "" {
		return nil, invalidf("name, email and message are required")
	}
	email, err := s.normalizer.Email(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	contact := &entity.ContactRequest{
		Name:    name,
		Email:   email,
		Company: nonEmpty(req.Company),
		Message: message,
	}
	if err := s.repo.CreateContactRequest(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}
