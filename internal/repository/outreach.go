package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/octobees/hireloop/api/internal/entity"
)

var (
	// ErrOutreachNotFound is returned when no outreach email matches the lookup.
	ErrOutreachNotFound = errors.New("outreach email not found")
	// ErrTemplateNotFound is returned when no email template matches the lookup.
	ErrTemplateNotFound = errors.New("template not found")
)

// OutreachRepository persists outreach emails and reusable templates.
type OutreachRepository interface {
	ListEmails(ctx context.Context) ([]entity.OutreachEmail, error)
	FindEmail(ctx context.Context, id string) (*entity.OutreachEmail, error)
	CreateEmail(ctx context.Context, email *entity.OutreachEmail) error
	UpdateEmailStatus(ctx context.Context, id, status string) (*entity.OutreachEmail, error)
	DeleteEmail(ctx context.Context, id string) error

	ListTemplates(ctx context.Context) ([]entity.EmailTemplate, error)
	CreateTemplate(ctx context.Context, tpl *entity.EmailTemplate) error
	UpdateTemplate(ctx context.Context, tpl *entity.EmailTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
}

// SQLiteOutreachRepository implements OutreachRepository on SQLite.
type SQLiteOutreachRepository struct {
	db sqlDB
}

// NewSQLiteOutreachRepository wires an outreach repository.
func NewSQLiteOutreachRepository(db *sql.DB) *SQLiteOutreachRepository {
	return &SQLiteOutreachRepository{db: db}
}

const outreachColumns = `id, candidate_id, job_id, sequence_day, subject, body, status, sent_at, opened_at, replied_at, created_at`

func scanOutreach(row rowScanner) (*entity.OutreachEmail, error) {
	var (
		email     entity.OutreachEmail
		jobID     sql.NullString
		sentAt    sql.NullString
		openedAt  sql.NullString
		repliedAt sql.NullString
	)
	if err := row.Scan(&email.ID, &email.CandidateID, &jobID, &email.SequenceDay, &email.Subject, &email.Body,
		&email.Status, &sentAt, &openedAt, &repliedAt, &email.CreatedAt); err != nil {
		return nil, err
	}
	email.JobID = stringPtr(jobID)
	email.SentAt = stringPtr(sentAt)
	email.OpenedAt = stringPtr(openedAt)
	email.RepliedAt = stringPtr(repliedAt)
	return &email, nil
}

// ListEmails returns outreach emails, most recently sent first.
func (r *SQLiteOutreachRepository) ListEmails(ctx context.Context) ([]entity.OutreachEmail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+outreachColumns+` FROM outreach_emails ORDER BY sent_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list outreach emails: %w", err)
	}
	defer rows.Close()

	emails := make([]entity.OutreachEmail, 0)
	for rows.Next() {
		email, err := scanOutreach(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outreach row: %w", err)
		}
		emails = append(emails, *email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outreach emails: %w", err)
	}
	return emails, nil
}

// FindEmail retrieves an outreach email by identifier.
func (r *SQLiteOutreachRepository) FindEmail(ctx context.Context, id string) (*entity.OutreachEmail, error) {
	email, err := scanOutreach(r.db.QueryRowContext(ctx, `SELECT `+outreachColumns+` FROM outreach_emails WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOutreachNotFound
		}
		return nil, fmt.Errorf("query outreach email: %w", err)
	}
	return email, nil
}

// CreateEmail records an outreach email. SentAt defaults to now.
func (r *SQLiteOutreachRepository) CreateEmail(ctx context.Context, email *entity.OutreachEmail) error {
	if email == nil {
		return fmt.Errorf("outreach payload is nil")
	}
	ensureID(&email.ID)
	email.CreatedAt = now()
	if email.SentAt == nil {
		sentAt := email.CreatedAt
		email.SentAt = &sentAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outreach_emails (id, candidate_id, job_id, sequence_day, subject, body, status, sent_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		email.ID, email.CandidateID, stringOrNil(email.JobID), email.SequenceDay, email.Subject, email.Body,
		email.Status, stringOrNil(email.SentAt), email.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: candidate %s", ErrInvalidReference, email.CandidateID)
		}
		return fmt.Errorf("insert outreach email: %w", err)
	}
	return nil
}

// UpdateEmailStatus sets the status and stamps opened_at or replied_at when applicable.
func (r *SQLiteOutreachRepository) UpdateEmailStatus(ctx context.Context, id, status string) (*entity.OutreachEmail, error) {
	query := `UPDATE outreach_emails SET status = ? WHERE id = ?`
	args := []any{status, id}
	switch status {
	case entity.OutreachOpened:
		query = `UPDATE outreach_emails SET status = ?, opened_at = COALESCE(opened_at, ?) WHERE id = ?`
		args = []any{status, now(), id}
	case entity.OutreachReplied:
		query = `UPDATE outreach_emails SET status = ?, replied_at = COALESCE(replied_at, ?) WHERE id = ?`
		args = []any{status, now(), id}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update outreach status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrOutreachNotFound
	}
	return r.FindEmail(ctx, id)
}

// DeleteEmail removes an outreach email.
func (r *SQLiteOutreachRepository) DeleteEmail(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM outreach_emails WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete outreach email: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete outreach email: %w", err)
	}
	if n == 0 {
		return ErrOutreachNotFound
	}
	return nil
}

// ListTemplates returns templates, newest first.
func (r *SQLiteOutreachRepository) ListTemplates(ctx context.Context) ([]entity.EmailTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, subject, body, category, created_at FROM email_templates ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]entity.EmailTemplate, 0)
	for rows.Next() {
		var tpl entity.EmailTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Subject, &tpl.Body, &tpl.Category, &tpl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// CreateTemplate inserts a template.
func (r *SQLiteOutreachRepository) CreateTemplate(ctx context.Context, tpl *entity.EmailTemplate) error {
	if tpl == nil {
		return fmt.Errorf("template payload is nil")
	}
	ensureID(&tpl.ID)
	tpl.CreatedAt = now()
	_, err := r.db.ExecContext(ctx, `INSERT INTO email_templates (id, name, subject, body, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		tpl.ID, tpl.Name, tpl.Subject, tpl.Body, tpl.Category, tpl.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// UpdateTemplate overwrites every editable template field.
func (r *SQLiteOutreachRepository) UpdateTemplate(ctx context.Context, tpl *entity.EmailTemplate) error {
	res, err := r.db.ExecContext(ctx, `UPDATE email_templates SET name = ?, subject = ?, body = ?, category = ? WHERE id = ?`,
		tpl.Name, tpl.Subject, tpl.Body, tpl.Category, tpl.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTemplateNotFound
	}
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM email_templates WHERE id = ?`, tpl.ID).Scan(&tpl.CreatedAt)
}

// DeleteTemplate removes a template.
func (r *SQLiteOutreachRepository) DeleteTemplate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
