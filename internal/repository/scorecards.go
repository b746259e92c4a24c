package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/octobees/hireloop/api/internal/entity"
)

// ScorecardsRepository persists interview scorecards. Scorecards are append-only.
type ScorecardsRepository interface {
	List(ctx context.Context) ([]entity.Scorecard, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]entity.Scorecard, error)
	Create(ctx context.Context, scorecard *entity.Scorecard) error
}

// SQLiteScorecardsRepository implements ScorecardsRepository on SQLite.
type SQLiteScorecardsRepository struct {
	db sqlDB
}

// NewSQLiteScorecardsRepository wires a scorecards repository.
func NewSQLiteScorecardsRepository(db *sql.DB) *SQLiteScorecardsRepository {
	return &SQLiteScorecardsRepository{db: db}
}

const scorecardColumns = `id, candidate_id, job_id, interviewer_id, stage, scores, feedback, created_at`

func (r *SQLiteScorecardsRepository) query(ctx context.Context, query string, args ...any) ([]entity.Scorecard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scorecards: %w", err)
	}
	defer rows.Close()

	scorecards := make([]entity.Scorecard, 0)
	for rows.Next() {
		var (
			sc          entity.Scorecard
			interviewer sql.NullString
			scores      sql.NullString
			feedback    sql.NullString
		)
		if err := rows.Scan(&sc.ID, &sc.CandidateID, &sc.JobID, &interviewer, &sc.Stage, &scores, &feedback, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan scorecard row: %w", err)
		}
		sc.InterviewerID = stringPtr(interviewer)
		sc.Scores = decodeObject(scores)
		if sc.Scores == nil {
			sc.Scores = map[string]any{}
		}
		sc.Feedback = stringPtr(feedback)
		scorecards = append(scorecards, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scorecards: %w", err)
	}
	return scorecards, nil
}

// List returns every scorecard, newest first.
func (r *SQLiteScorecardsRepository) List(ctx context.Context) ([]entity.Scorecard, error) {
	return r.query(ctx, `SELECT `+scorecardColumns+` FROM scorecards ORDER BY created_at DESC, rowid DESC`)
}

// ListByCandidate returns a candidate's scorecards, newest first.
func (r *SQLiteScorecardsRepository) ListByCandidate(ctx context.Context, candidateID string) ([]entity.Scorecard, error) {
	return r.query(ctx, `SELECT `+scorecardColumns+` FROM scorecards WHERE candidate_id = ? ORDER BY created_at DESC, rowid DESC`, candidateID)
}

// Create appends a scorecard.
func (r *SQLiteScorecardsRepository) Create(ctx context.Context, sc *entity.Scorecard) error {
	if sc == nil {
		return fmt.Errorf("scorecard payload is nil")
	}
	ensureID(&sc.ID)
	sc.CreatedAt = now()
	if sc.Scores == nil {
		sc.Scores = map[string]any{}
	}
	scores, err := encodeJSON(sc.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scorecards (id, candidate_id, job_id, interviewer_id, stage, scores, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.CandidateID, sc.JobID, stringOrNil(sc.InterviewerID), sc.Stage, scores, stringOrNil(sc.Feedback), sc.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: candidate %s job %s", ErrInvalidReference, sc.CandidateID, sc.JobID)
		}
		return fmt.Errorf("insert scorecard: %w", err)
	}
	return nil
}
