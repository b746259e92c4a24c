package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/octobees/hireloop/api/internal/entity"
)

// ErrShortlistEntryNotFound is returned when a candidate is not on a job's shortlist.
var ErrShortlistEntryNotFound = errors.New("shortlist entry not found")

// ShortlistRepository persists job_candidates rows.
type ShortlistRepository interface {
	ListByJob(ctx context.Context, jobID string) ([]entity.JobCandidate, error)
	Upsert(ctx context.Context, entry *entity.JobCandidate) error
	UpdateStatus(ctx context.Context, jobID, candidateID, status string) (*entity.JobCandidate, error)
	RecordEvaluation(ctx context.Context, entry *entity.JobCandidate, breakdown map[string]any) error
}

// SQLiteShortlistRepository implements ShortlistRepository on SQLite.
type SQLiteShortlistRepository struct {
	db    sqlDB
	begin func(ctx context.Context) (*sql.Tx, error)
}

// NewSQLiteShortlistRepository wires a shortlist repository.
func NewSQLiteShortlistRepository(db *sql.DB) *SQLiteShortlistRepository {
	return &SQLiteShortlistRepository{
		db: db,
		begin: func(ctx context.Context) (*sql.Tx, error) {
			return db.BeginTx(ctx, nil)
		},
	}
}

const shortlistSelect = `
	SELECT jc.id, jc.job_id, jc.candidate_id, jc.match_score, jc.strengths, jc.gaps, jc.status, jc.created_at,
		c.name, c.email, c.stage, c.fit_score
	FROM job_candidates jc
	JOIN candidates c ON c.id = jc.candidate_id`

func scanJobCandidate(row rowScanner) (*entity.JobCandidate, error) {
	var (
		entry      entity.JobCandidate
		matchScore sql.NullInt64
		strengths  sql.NullString
		gaps       sql.NullString
		fitScore   sql.NullInt64
	)
	if err := row.Scan(&entry.ID, &entry.JobID, &entry.CandidateID, &matchScore, &strengths, &gaps, &entry.Status,
		&entry.CreatedAt, &entry.CandidateName, &entry.CandidateEmail, &entry.CandidateStage, &fitScore); err != nil {
		return nil, err
	}
	entry.MatchScore = intPtr(matchScore)
	entry.Strengths = decodeList(strengths)
	entry.Gaps = decodeList(gaps)
	entry.FitScore = intPtr(fitScore)
	return &entry, nil
}

// ListByJob returns the shortlist for a job, best matches first.
func (r *SQLiteShortlistRepository) ListByJob(ctx context.Context, jobID string) ([]entity.JobCandidate, error) {
	rows, err := r.db.QueryContext(ctx, shortlistSelect+` WHERE jc.job_id = ? ORDER BY jc.match_score IS NULL, jc.match_score DESC, jc.created_at ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list shortlist: %w", err)
	}
	defer rows.Close()

	entries := make([]entity.JobCandidate, 0)
	for rows.Next() {
		entry, err := scanJobCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shortlist row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shortlist: %w", err)
	}
	return entries, nil
}

// Upsert inserts the entry or refreshes the assessment of an existing (job, candidate) pair.
func (r *SQLiteShortlistRepository) Upsert(ctx context.Context, entry *entity.JobCandidate) error {
	if entry == nil {
		return fmt.Errorf("shortlist payload is nil")
	}
	if err := upsertJobCandidate(ctx, r.db, entry); err != nil {
		return err
	}
	stored, err := r.find(ctx, entry.JobID, entry.CandidateID)
	if err != nil {
		return err
	}
	*entry = *stored
	return nil
}

// RecordEvaluation stores a fit evaluation on the shortlist entry and copies the
// match score and breakdown onto the candidate. Both writes commit or neither does.
func (r *SQLiteShortlistRepository) RecordEvaluation(ctx context.Context, entry *entity.JobCandidate, breakdown map[string]any) error {
	if entry == nil {
		return fmt.Errorf("shortlist payload is nil")
	}
	encoded, err := encodeJSON(breakdown)
	if err != nil {
		return fmt.Errorf("encode fit score breakdown: %w", err)
	}

	tx, err := r.begin(ctx)
	if err != nil {
		return fmt.Errorf("start evaluation tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE candidates SET fit_score = ?, fit_score_breakdown = ?, updated_at = ? WHERE id = ?`,
		intOrNil(entry.MatchScore), encoded, now(), entry.CandidateID)
	if err != nil {
		return fmt.Errorf("update candidate fit score: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCandidateNotFound
	}
	if err := upsertJobCandidate(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation: %w", err)
	}
	stored, err := r.find(ctx, entry.JobID, entry.CandidateID)
	if err != nil {
		return err
	}
	*entry = *stored
	return nil
}

// UpdateStatus changes the shortlist status of a candidate for a job.
func (r *SQLiteShortlistRepository) UpdateStatus(ctx context.Context, jobID, candidateID, status string) (*entity.JobCandidate, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE job_candidates SET status = ? WHERE job_id = ? AND candidate_id = ?`, status, jobID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("update shortlist status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrShortlistEntryNotFound
	}
	return r.find(ctx, jobID, candidateID)
}

func (r *SQLiteShortlistRepository) find(ctx context.Context, jobID, candidateID string) (*entity.JobCandidate, error) {
	entry, err := scanJobCandidate(r.db.QueryRowContext(ctx, shortlistSelect+` WHERE jc.job_id = ? AND jc.candidate_id = ?`, jobID, candidateID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShortlistEntryNotFound
		}
		return nil, fmt.Errorf("query shortlist entry: %w", err)
	}
	return entry, nil
}

func upsertJobCandidate(ctx context.Context, db sqlDB, entry *entity.JobCandidate) error {
	ensureID(&entry.ID)
	if entry.CreatedAt == "" {
		entry.CreatedAt = now()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO job_candidates (id, job_id, candidate_id, match_score, strengths, gaps, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			match_score = excluded.match_score,
			strengths = excluded.strengths,
			gaps = excluded.gaps,
			status = excluded.status`,
		entry.ID, entry.JobID, entry.CandidateID, intOrNil(entry.MatchScore),
		encodeList(entry.Strengths), encodeList(entry.Gaps), entry.Status, entry.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: job %s candidate %s", ErrInvalidReference, entry.JobID, entry.CandidateID)
		}
		return fmt.Errorf("upsert shortlist entry: %w", err)
	}
	return nil
}
