package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/hireloop/api/internal/entity"
)

// ErrCandidateNotFound is returned when no candidate matches the lookup.
var ErrCandidateNotFound = errors.New("candidate not found")

// CandidateUpdate carries the whitelisted candidate fields; nil fields are left untouched.
type CandidateUpdate struct {
	Stage             *string
	FitScore          *int
	FitScoreBreakdown map[string]any
}

// StageCounts holds the number of candidates per pipeline stage.
type StageCounts struct {
	ByStage map[string]int
	Total   int
}

// CandidatesRepository describes persistence operations for candidates.
type CandidatesRepository interface {
	List(ctx context.Context) ([]entity.Candidate, error)
	FindByID(ctx context.Context, id string) (*entity.Candidate, error)
	Create(ctx context.Context, candidate *entity.Candidate) error
	CreateBatch(ctx context.Context, candidates []*entity.Candidate, shortlist []*entity.JobCandidate) error
	Update(ctx context.Context, id string, update CandidateUpdate) (*entity.Candidate, error)
	Delete(ctx context.Context, id string) error
	CountByStage(ctx context.Context, jobID *string) (StageCounts, error)
	AverageFitScore(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]entity.Candidate, error)
}

// SQLiteCandidatesRepository implements CandidatesRepository on SQLite.
type SQLiteCandidatesRepository struct {
	db    sqlDB
	begin func(ctx context.Context) (*sql.Tx, error)
}

// NewSQLiteCandidatesRepository wires a candidates repository.
func NewSQLiteCandidatesRepository(db *sql.DB) *SQLiteCandidatesRepository {
	return &SQLiteCandidatesRepository{
		db: db,
		begin: func(ctx context.Context) (*sql.Tx, error) {
			return db.BeginTx(ctx, nil)
		},
	}
}

const candidateColumns = `id, job_id, name, email, phone, role, location, skills, experience, education,
	years_of_experience, stage, fit_score, fit_score_breakdown, resume_text, source, created_at, updated_at`

func scanCandidate(row rowScanner) (*entity.Candidate, error) {
	var (
		c          entity.Candidate
		jobID      sql.NullString
		phone      sql.NullString
		location   sql.NullString
		skills     sql.NullString
		experience sql.NullString
		education  sql.NullString
		years      sql.NullInt64
		fitScore   sql.NullInt64
		breakdown  sql.NullString
		resumeText sql.NullString
		source     sql.NullString
	)
	if err := row.Scan(&c.ID, &jobID, &c.Name, &c.Email, &phone, &c.Role, &location, &skills, &experience,
		&education, &years, &c.Stage, &fitScore, &breakdown, &resumeText, &source, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.JobID = stringPtr(jobID)
	c.Phone = stringPtr(phone)
	c.Location = stringPtr(location)
	c.Skills = decodeList(skills)
	c.Experience = decodeLoose(experience)
	c.Education = decodeLoose(education)
	c.YearsOfExperience = intPtr(years)
	c.FitScore = intPtr(fitScore)
	c.FitScoreBreakdown = decodeObject(breakdown)
	c.ResumeText = stringPtr(resumeText)
	c.Source = source.String
	return &c, nil
}

func (r *SQLiteCandidatesRepository) queryCandidates(ctx context.Context, query string, args ...any) ([]entity.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]entity.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

// List returns all candidates, newest first.
func (r *SQLiteCandidatesRepository) List(ctx context.Context) ([]entity.Candidate, error) {
	return r.queryCandidates(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC, rowid DESC`)
}

// Recent returns the most recently created candidates.
func (r *SQLiteCandidatesRepository) Recent(ctx context.Context, limit int) ([]entity.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.queryCandidates(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// FindByID retrieves a candidate by identifier.
func (r *SQLiteCandidatesRepository) FindByID(ctx context.Context, id string) (*entity.Candidate, error) {
	c, err := scanCandidate(r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("query candidate by id: %w", err)
	}
	return c, nil
}

// Create inserts a candidate and fills its id and timestamps.
func (r *SQLiteCandidatesRepository) Create(ctx context.Context, candidate *entity.Candidate) error {
	if candidate == nil {
		return fmt.Errorf("candidate payload is nil")
	}
	return insertCandidate(ctx, r.db, candidate)
}

// CreateBatch inserts candidates and their shortlist rows in a single transaction.
func (r *SQLiteCandidatesRepository) CreateBatch(ctx context.Context, candidates []*entity.Candidate, shortlist []*entity.JobCandidate) error {
	if len(candidates) == 0 && len(shortlist) == 0 {
		return nil
	}

	tx, err := r.begin(ctx)
	if err != nil {
		return fmt.Errorf("start candidate batch tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range candidates {
		if err := insertCandidate(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, link := range shortlist {
		if err := upsertJobCandidate(ctx, tx, link); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit candidate batch: %w", err)
	}
	return nil
}

func insertCandidate(ctx context.Context, db sqlDB, c *entity.Candidate) error {
	ensureID(&c.ID)
	ts := now()
	c.CreatedAt, c.UpdatedAt = ts, ts
	if c.Stage == "" {
		c.Stage = entity.StageNew
	}
	if c.Source == "" {
		c.Source = "Direct Application"
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	experience, err := encodeJSON(c.Experience)
	if err != nil {
		return fmt.Errorf("encode experience: %w", err)
	}
	education, err := encodeJSON(c.Education)
	if err != nil {
		return fmt.Errorf("encode education: %w", err)
	}
	var breakdown any
	if c.FitScoreBreakdown != nil {
		if breakdown, err = encodeJSON(c.FitScoreBreakdown); err != nil {
			return fmt.Errorf("encode fit score breakdown: %w", err)
		}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO candidates (id, job_id, name, email, phone, role, location, skills, experience, education,
			years_of_experience, stage, fit_score, fit_score_breakdown, resume_text, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, stringOrNil(c.JobID), c.Name, c.Email, stringOrNil(c.Phone), c.Role, stringOrNil(c.Location),
		encodeList(c.Skills), experience, education, intOrNil(c.YearsOfExperience), c.Stage,
		intOrNil(c.FitScore), breakdown, stringOrNil(c.ResumeText), c.Source, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: job %v", ErrInvalidReference, stringOrNil(c.JobID))
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// Update patches the stage and fit score fields.
func (r *SQLiteCandidatesRepository) Update(ctx context.Context, id string, update CandidateUpdate) (*entity.Candidate, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)

	if update.Stage != nil {
		setClauses = append(setClauses, "stage = ?")
		args = append(args, *update.Stage)
	}
	if update.FitScore != nil {
		setClauses = append(setClauses, "fit_score = ?")
		args = append(args, *update.FitScore)
	}
	if update.FitScoreBreakdown != nil {
		encoded, err := encodeJSON(update.FitScoreBreakdown)
		if err != nil {
			return nil, fmt.Errorf("encode fit score breakdown: %w", err)
		}
		setClauses = append(setClauses, "fit_score_breakdown = ?")
		args = append(args, encoded)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, now(), id)

	query := fmt.Sprintf(`UPDATE candidates SET %s WHERE id = ?`, strings.Join(setClauses, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrCandidateNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a candidate and, through foreign keys, their dependent rows.
func (r *SQLiteCandidatesRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if n == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

// CountByStage counts candidates per stage, optionally restricted to one job.
func (r *SQLiteCandidatesRepository) CountByStage(ctx context.Context, jobID *string) (StageCounts, error) {
	query := `SELECT stage, COUNT(*) FROM candidates GROUP BY stage`
	args := []any{}
	if jobID != nil {
		query = `SELECT stage, COUNT(*) FROM candidates WHERE job_id = ? GROUP BY stage`
		args = append(args, *jobID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return StageCounts{}, fmt.Errorf("count candidates by stage: %w", err)
	}
	defer rows.Close()

	counts := StageCounts{ByStage: make(map[string]int, len(entity.Stages))}
	for _, stage := range entity.Stages {
		counts.ByStage[stage] = 0
	}
	for rows.Next() {
		var (
			stage string
			n     int
		)
		if err := rows.Scan(&stage, &n); err != nil {
			return StageCounts{}, fmt.Errorf("scan stage count: %w", err)
		}
		counts.ByStage[stage] += n
		counts.Total += n
	}
	if err := rows.Err(); err != nil {
		return StageCounts{}, fmt.Errorf("iterate stage counts: %w", err)
	}
	return counts, nil
}

// AverageFitScore returns the mean fit score over scored candidates, or 0 when none are scored.
func (r *SQLiteCandidatesRepository) AverageFitScore(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, `SELECT AVG(fit_score) FROM candidates WHERE fit_score IS NOT NULL`).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average fit score: %w", err)
	}
	return avg.Float64, nil
}
