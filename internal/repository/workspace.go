package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/octobees/hireloop/api/internal/entity"
)

// WorkspaceRepository persists workspace-level records: the settings singleton,
// integrations and public contact requests.
type WorkspaceRepository interface {
	GetSettings(ctx context.Context) (*entity.Settings, error)
	SaveSettings(ctx context.Context, settings *entity.Settings) error
	ListIntegrations(ctx context.Context) ([]entity.Integration, error)
	UpsertIntegration(ctx context.Context, integration *entity.Integration) error
	CreateContactRequest(ctx context.Context, req *entity.ContactRequest) error
}

// SQLiteWorkspaceRepository implements WorkspaceRepository on SQLite.
type SQLiteWorkspaceRepository struct {
	db sqlDB
}

// NewSQLiteWorkspaceRepository wires a workspace repository.
func NewSQLiteWorkspaceRepository(db *sql.DB) *SQLiteWorkspaceRepository {
	return &SQLiteWorkspaceRepository{db: db}
}

// GetSettings returns the settings row, or nil when none has been saved.
func (r *SQLiteWorkspaceRepository) GetSettings(ctx context.Context) (*entity.Settings, error) {
	var (
		s             entity.Settings
		companyName   sql.NullString
		website       sql.NullString
		threshold     sql.NullString
		notifications sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_name, website, auto_reject_threshold, email_notifications, updated_at
		FROM settings ORDER BY rowid LIMIT 1`).
		Scan(&s.ID, &companyName, &website, &threshold, &notifications, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query settings: %w", err)
	}
	s.CompanyName = stringPtr(companyName)
	s.Website = stringPtr(website)
	s.AutoRejectThreshold = stringPtr(threshold)
	s.EmailNotifications = notifications.Int64 != 0
	return &s, nil
}

// SaveSettings updates the existing settings row or inserts the first one.
func (r *SQLiteWorkspaceRepository) SaveSettings(ctx context.Context, settings *entity.Settings) error {
	existing, err := r.GetSettings(ctx)
	if err != nil {
		return err
	}
	settings.UpdatedAt = now()

	if existing != nil {
		settings.ID = existing.ID
		_, err = r.db.ExecContext(ctx, `
			UPDATE settings SET company_name = ?, website = ?, auto_reject_threshold = ?, email_notifications = ?, updated_at = ?
			WHERE id = ?`,
			stringOrNil(settings.CompanyName), stringOrNil(settings.Website), stringOrNil(settings.AutoRejectThreshold),
			boolToInt(settings.EmailNotifications), settings.UpdatedAt, settings.ID)
		if err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		return nil
	}

	ensureID(&settings.ID)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (id, company_name, website, auto_reject_threshold, email_notifications, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		settings.ID, stringOrNil(settings.CompanyName), stringOrNil(settings.Website), stringOrNil(settings.AutoRejectThreshold),
		boolToInt(settings.EmailNotifications), settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// ListIntegrations returns every integration ordered by name.
func (r *SQLiteWorkspaceRepository) ListIntegrations(ctx context.Context) ([]entity.Integration, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, status, config, updated_at FROM integrations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	integrations := make([]entity.Integration, 0)
	for rows.Next() {
		var (
			in     entity.Integration
			config sql.NullString
		)
		if err := rows.Scan(&in.ID, &in.Name, &in.Status, &config, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan integration row: %w", err)
		}
		in.Config = decodeObject(config)
		integrations = append(integrations, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate integrations: %w", err)
	}
	return integrations, nil
}

// UpsertIntegration inserts the integration or updates status and config of an existing id.
// The name of an existing integration is kept.
func (r *SQLiteWorkspaceRepository) UpsertIntegration(ctx context.Context, in *entity.Integration) error {
	var config any
	if in.Config != nil {
		encoded, err := encodeJSON(in.Config)
		if err != nil {
			return fmt.Errorf("encode integration config: %w", err)
		}
		config = encoded
	}
	in.UpdatedAt = now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO integrations (id, name, status, config, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			config = COALESCE(excluded.config, integrations.config),
			updated_at = excluded.updated_at`,
		in.ID, in.Name, in.Status, config, in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert integration: %w", err)
	}

	var stored sql.NullString
	if err := r.db.QueryRowContext(ctx, `SELECT name, config FROM integrations WHERE id = ?`, in.ID).Scan(&in.Name, &stored); err != nil {
		return fmt.Errorf("reload integration: %w", err)
	}
	in.Config = decodeObject(stored)
	return nil
}

// CreateContactRequest stores a contact form submission.
func (r *SQLiteWorkspaceRepository) CreateContactRequest(ctx context.Context, req *entity.ContactRequest) error {
	if req == nil {
		return fmt.Errorf("contact payload is nil")
	}
	ensureID(&req.ID)
	req.CreatedAt = now()
	_, err := r.db.ExecContext(ctx, `INSERT INTO contact_requests (id, name, email, company, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.Name, req.Email, stringOrNil(req.Company), req.Message, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact request: %w", err)
	}
	return nil
}
