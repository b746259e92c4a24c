package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/hireloop/api/internal/entity"
)

var (
	// ErrInterviewNotFound is returned when no interview matches the lookup.
	ErrInterviewNotFound = errors.New("interview not found")
	// ErrEvaluationNotFound is returned when no evaluation matches the lookup.
	ErrEvaluationNotFound = errors.New("evaluation not found")
)

// InterviewUpdate carries mutable interview fields; nil fields are left untouched.
type InterviewUpdate struct {
	StartTime *string
	EndTime   *string
	VideoLink *string
	Status    *string
}

// InterviewsRepository describes persistence operations for interviews and their prep evaluations.
type InterviewsRepository interface {
	List(ctx context.Context) ([]entity.Interview, error)
	FindByID(ctx context.Context, id string) (*entity.Interview, error)
	Create(ctx context.Context, interview *entity.Interview) error
	Update(ctx context.Context, id string, update InterviewUpdate) (*entity.Interview, error)
	Delete(ctx context.Context, id string) error
	CountUpcoming(ctx context.Context, from string) (int, error)
	Recent(ctx context.Context, limit int) ([]entity.Interview, error)

	ListEvaluations(ctx context.Context, interviewID string) ([]entity.Evaluation, error)
	ReplaceEvaluations(ctx context.Context, interviewID string, evaluations []*entity.Evaluation) error
	UpdateEvaluation(ctx context.Context, id string, rating *int, notes *string) (*entity.Evaluation, error)
}

// SQLiteInterviewsRepository implements InterviewsRepository on SQLite.
type SQLiteInterviewsRepository struct {
	db    sqlDB
	begin func(ctx context.Context) (*sql.Tx, error)
}

// NewSQLiteInterviewsRepository wires an interviews repository.
func NewSQLiteInterviewsRepository(db *sql.DB) *SQLiteInterviewsRepository {
	return &SQLiteInterviewsRepository{
		db: db,
		begin: func(ctx context.Context) (*sql.Tx, error) {
			return db.BeginTx(ctx, nil)
		},
	}
}

const interviewColumns = `id, candidate_id, job_id, start_time, end_time, video_link, status, created_at`

func scanInterview(row rowScanner) (*entity.Interview, error) {
	var (
		interview entity.Interview
		jobID     sql.NullString
		videoLink sql.NullString
	)
	if err := row.Scan(&interview.ID, &interview.CandidateID, &jobID, &interview.StartTime, &interview.EndTime,
		&videoLink, &interview.Status, &interview.CreatedAt); err != nil {
		return nil, err
	}
	interview.JobID = stringPtr(jobID)
	interview.VideoLink = stringPtr(videoLink)
	return &interview, nil
}

func (r *SQLiteInterviewsRepository) queryInterviews(ctx context.Context, query string, args ...any) ([]entity.Interview, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]entity.Interview, 0)
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		interviews = append(interviews, *interview)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interviews: %w", err)
	}
	return interviews, nil
}

// List returns interviews in chronological order.
func (r *SQLiteInterviewsRepository) List(ctx context.Context) ([]entity.Interview, error) {
	return r.queryInterviews(ctx, `SELECT `+interviewColumns+` FROM interviews ORDER BY start_time ASC`)
}

// Recent returns the most recently scheduled interviews.
func (r *SQLiteInterviewsRepository) Recent(ctx context.Context, limit int) ([]entity.Interview, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.queryInterviews(ctx, `SELECT `+interviewColumns+` FROM interviews ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// FindByID retrieves an interview by identifier.
func (r *SQLiteInterviewsRepository) FindByID(ctx context.Context, id string) (*entity.Interview, error) {
	interview, err := scanInterview(r.db.QueryRowContext(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("query interview by id: %w", err)
	}
	return interview, nil
}

// Create inserts an interview.
func (r *SQLiteInterviewsRepository) Create(ctx context.Context, interview *entity.Interview) error {
	if interview == nil {
		return fmt.Errorf("interview payload is nil")
	}
	ensureID(&interview.ID)
	interview.CreatedAt = now()
	if interview.Status == "" {
		interview.Status = entity.InterviewScheduled
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO interviews (id, candidate_id, job_id, start_time, end_time, video_link, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		interview.ID, interview.CandidateID, stringOrNil(interview.JobID), interview.StartTime, interview.EndTime,
		stringOrNil(interview.VideoLink), interview.Status, interview.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: candidate %s", ErrInvalidReference, interview.CandidateID)
		}
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

// Update patches interview timing, link and status.
func (r *SQLiteInterviewsRepository) Update(ctx context.Context, id string, update InterviewUpdate) (*entity.Interview, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)

	if update.StartTime != nil {
		setClauses = append(setClauses, "start_time = ?")
		args = append(args, *update.StartTime)
	}
	if update.EndTime != nil {
		setClauses = append(setClauses, "end_time = ?")
		args = append(args, *update.EndTime)
	}
	if update.VideoLink != nil {
		setClauses = append(setClauses, "video_link = ?")
		args = append(args, *update.VideoLink)
	}
	if update.Status != nil {
		setClauses = append(setClauses, "status = ?")
		args = append(args, *update.Status)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`UPDATE interviews SET %s WHERE id = ?`, strings.Join(setClauses, ", ")), args...)
	if err != nil {
		return nil, fmt.Errorf("update interview: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrInterviewNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes an interview and its evaluations.
func (r *SQLiteInterviewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	if n == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

// CountUpcoming counts scheduled interviews starting at or after from.
func (r *SQLiteInterviewsRepository) CountUpcoming(ctx context.Context, from string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interviews WHERE status = ? AND start_time >= ?`,
		entity.InterviewScheduled, from).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count upcoming interviews: %w", err)
	}
	return count, nil
}

const evaluationColumns = `id, interview_id, question, criterion, listen_for, rating, notes, created_at`

func scanEvaluation(row rowScanner) (*entity.Evaluation, error) {
	var (
		ev        entity.Evaluation
		listenFor sql.NullString
		rating    sql.NullInt64
		notes     sql.NullString
	)
	if err := row.Scan(&ev.ID, &ev.InterviewID, &ev.Question, &ev.Criterion, &listenFor, &rating, &notes, &ev.CreatedAt); err != nil {
		return nil, err
	}
	ev.ListenFor = stringPtr(listenFor)
	ev.Rating = intPtr(rating)
	ev.Notes = stringPtr(notes)
	return &ev, nil
}

// ListEvaluations returns the prep questions for an interview in creation order.
func (r *SQLiteInterviewsRepository) ListEvaluations(ctx context.Context, interviewID string) ([]entity.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE interview_id = ? ORDER BY created_at ASC, rowid ASC`, interviewID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := make([]entity.Evaluation, 0)
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation row: %w", err)
		}
		evaluations = append(evaluations, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return evaluations, nil
}

// ReplaceEvaluations swaps the interview's prep questions for a new set atomically.
func (r *SQLiteInterviewsRepository) ReplaceEvaluations(ctx context.Context, interviewID string, evaluations []*entity.Evaluation) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return fmt.Errorf("start evaluations tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM evaluations WHERE interview_id = ?`, interviewID); err != nil {
		return fmt.Errorf("clear evaluations: %w", err)
	}

	ts := now()
	for _, ev := range evaluations {
		ensureID(&ev.ID)
		ev.InterviewID = interviewID
		ev.CreatedAt = ts
		_, err := tx.ExecContext(ctx, `
			INSERT INTO evaluations (id, interview_id, question, criterion, listen_for, rating, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.ID, ev.InterviewID, ev.Question, ev.Criterion, stringOrNil(ev.ListenFor), intOrNil(ev.Rating),
			stringOrNil(ev.Notes), ev.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrInterviewNotFound
			}
			return fmt.Errorf("insert evaluation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluations: %w", err)
	}
	return nil
}

// UpdateEvaluation records a rating and notes for one prep question.
func (r *SQLiteInterviewsRepository) UpdateEvaluation(ctx context.Context, id string, rating *int, notes *string) (*entity.Evaluation, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE evaluations SET rating = COALESCE(?, rating), notes = COALESCE(?, notes) WHERE id = ?`,
		intOrNil(rating), stringOrNil(notes), id)
	if err != nil {
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrEvaluationNotFound
	}

	ev, err := scanEvaluation(r.db.QueryRowContext(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("query evaluation: %w", err)
	}
	return ev, nil
}
