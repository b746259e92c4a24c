package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/hireloop/api/internal/entity"
)

// ErrJobNotFound is returned when no job matches the lookup.
var ErrJobNotFound = errors.New("job not found")

// JobUpdate carries the whitelisted job fields; nil fields are left untouched.
type JobUpdate struct {
	Title               *string
	Department          *string
	Location            *string
	Type                *string
	Status              *string
	Description         *string
	Requirements        *[]string
	Responsibilities    *[]string
	DealBreakers        *entity.DealBreakers
	AutoSourcingEnabled *bool
	SourcingThreshold   *int
}

// Empty reports whether the update sets no field.
func (u JobUpdate) Empty() bool {
	return u.Title == nil && u.Department == nil && u.Location == nil && u.Type == nil &&
		u.Status == nil && u.Description == nil && u.Requirements == nil && u.Responsibilities == nil &&
		u.DealBreakers == nil && u.AutoSourcingEnabled == nil && u.SourcingThreshold == nil
}

// JobsRepository describes persistence operations for jobs.
type JobsRepository interface {
	List(ctx context.Context) ([]entity.Job, error)
	FindByID(ctx context.Context, id string) (*entity.Job, error)
	Create(ctx context.Context, job *entity.Job) error
	Update(ctx context.Context, id string, update JobUpdate) (*entity.Job, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

// SQLiteJobsRepository implements JobsRepository on SQLite.
type SQLiteJobsRepository struct {
	db sqlDB
}

// NewSQLiteJobsRepository wires a jobs repository.
func NewSQLiteJobsRepository(db *sql.DB) *SQLiteJobsRepository {
	return &SQLiteJobsRepository{db: db}
}

const jobColumns = `id, title, department, location, type, status, description, requirements, responsibilities,
	deal_breakers, auto_sourcing_enabled, sourcing_threshold, created_at, updated_at`

func scanJob(row rowScanner) (*entity.Job, error) {
	var (
		job              entity.Job
		description      sql.NullString
		requirements     sql.NullString
		responsibilities sql.NullString
		dealBreakers     sql.NullString
		autoSourcing     sql.NullInt64
		threshold        sql.NullInt64
	)
	if err := row.Scan(&job.ID, &job.Title, &job.Department, &job.Location, &job.Type, &job.Status,
		&description, &requirements, &responsibilities, &dealBreakers, &autoSourcing, &threshold,
		&job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}

	job.Description = description.String
	job.Requirements = decodeList(requirements)
	job.Responsibilities = decodeList(responsibilities)
	if dealBreakers.Valid && dealBreakers.String != "" {
		_ = json.Unmarshal([]byte(dealBreakers.String), &job.DealBreakers)
	}
	job.AutoSourcingEnabled = autoSourcing.Valid && autoSourcing.Int64 != 0
	job.SourcingThreshold = 70
	if threshold.Valid {
		job.SourcingThreshold = int(threshold.Int64)
	}
	return &job, nil
}

// List returns all jobs, newest first.
func (r *SQLiteJobsRepository) List(ctx context.Context) ([]entity.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]entity.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

// FindByID retrieves a job by identifier.
func (r *SQLiteJobsRepository) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("query job by id: %w", err)
	}
	return job, nil
}

// Create inserts a job and fills its id and timestamps.
func (r *SQLiteJobsRepository) Create(ctx context.Context, job *entity.Job) error {
	if job == nil {
		return fmt.Errorf("job payload is nil")
	}
	ensureID(&job.ID)
	ts := now()
	job.CreatedAt, job.UpdatedAt = ts, ts
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Responsibilities == nil {
		job.Responsibilities = []string{}
	}

	dealBreakers, err := encodeJSON(job.DealBreakers)
	if err != nil {
		return fmt.Errorf("encode deal breakers: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, title, department, location, type, status, description, requirements, responsibilities,
			deal_breakers, auto_sourcing_enabled, sourcing_threshold, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Title, job.Department, job.Location, job.Type, job.Status, job.Description,
		encodeList(job.Requirements), encodeList(job.Responsibilities), dealBreakers,
		boolToInt(job.AutoSourcingEnabled), job.SourcingThreshold, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Update patches whitelisted job attributes.
func (r *SQLiteJobsRepository) Update(ctx context.Context, id string, update JobUpdate) (*entity.Job, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)

	set := func(column string, value any) {
		setClauses = append(setClauses, column+" = ?")
		args = append(args, value)
	}

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Department != nil {
		set("department", *update.Department)
	}
	if update.Location != nil {
		set("location", *update.Location)
	}
	if update.Type != nil {
		set("type", *update.Type)
	}
	if update.Status != nil {
		set("status", *update.Status)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Requirements != nil {
		set("requirements", encodeList(*update.Requirements))
	}
	if update.Responsibilities != nil {
		set("responsibilities", encodeList(*update.Responsibilities))
	}
	if update.DealBreakers != nil {
		encoded, err := encodeJSON(*update.DealBreakers)
		if err != nil {
			return nil, fmt.Errorf("encode deal breakers: %w", err)
		}
		set("deal_breakers", encoded)
	}
	if update.AutoSourcingEnabled != nil {
		set("auto_sourcing_enabled", boolToInt(*update.AutoSourcingEnabled))
	}
	if update.SourcingThreshold != nil {
		set("sourcing_threshold", *update.SourcingThreshold)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	set("updated_at", now())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = ?`, strings.Join(setClauses, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrJobNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete removes a job. Foreign keys cascade to scorecards and shortlist rows and
// clear the job reference on candidates, interviews and outreach emails.
func (r *SQLiteJobsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// CountByStatus counts jobs in the given status.
func (r *SQLiteJobsRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE status = ?`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}
