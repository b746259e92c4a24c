package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		department TEXT NOT NULL,
		location TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		requirements TEXT,
		responsibilities TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		role TEXT NOT NULL,
		location TEXT,
		skills TEXT,
		experience TEXT,
		education TEXT,
		years_of_experience INTEGER,
		stage TEXT NOT NULL,
		fit_score INTEGER,
		fit_score_breakdown TEXT,
		resume_text TEXT,
		source TEXT DEFAULT 'Direct Application',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS scorecards (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		job_id TEXT NOT NULL,
		interviewer_id TEXT,
		stage TEXT NOT NULL,
		scores TEXT,
		feedback TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE,
		FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS job_candidates (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		candidate_id TEXT NOT NULL,
		match_score INTEGER,
		strengths TEXT,
		gaps TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE,
		UNIQUE(job_id, candidate_id)
	)`,
	`CREATE TABLE IF NOT EXISTS interviews (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		job_id TEXT,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		video_link TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE,
		FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS outreach_emails (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		job_id TEXT,
		sequence_day INTEGER NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		status TEXT NOT NULL,
		sent_at TEXT,
		opened_at TEXT,
		replied_at TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE,
		FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		interview_id TEXT NOT NULL,
		question TEXT NOT NULL,
		criterion TEXT NOT NULL,
		listen_for TEXT,
		rating INTEGER,
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (interview_id) REFERENCES interviews(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS contact_requests (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		company TEXT,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS email_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		category TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id TEXT PRIMARY KEY,
		company_name TEXT,
		website TEXT,
		auto_reject_threshold TEXT,
		email_notifications INTEGER,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS integrations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		config TEXT,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// columnMigration adds a column to an existing table when it is missing.
type columnMigration struct {
	table  string
	column string
	ddl    string
}

var columnMigrations = []columnMigration{
	{"candidates", "source", `ALTER TABLE candidates ADD COLUMN source TEXT DEFAULT 'Direct Application'`},
	{"candidates", "job_id", `ALTER TABLE candidates ADD COLUMN job_id TEXT REFERENCES jobs(id) ON DELETE SET NULL`},
	{"jobs", "deal_breakers", `ALTER TABLE jobs ADD COLUMN deal_breakers TEXT DEFAULT '{"location_match":false,"no_sponsorship":false,"onsite_required":false}'`},
	{"jobs", "auto_sourcing_enabled", `ALTER TABLE jobs ADD COLUMN auto_sourcing_enabled INTEGER DEFAULT 0`},
	{"jobs", "sourcing_threshold", `ALTER TABLE jobs ADD COLUMN sourcing_threshold INTEGER DEFAULT 70`},
	{"users", "password_hash", `ALTER TABLE users ADD COLUMN password_hash TEXT NOT NULL DEFAULT ''`},
	{"users", "role", `ALTER TABLE users ADD COLUMN role TEXT NOT NULL DEFAULT 'recruiter'`},
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_candidates_job_id ON candidates(job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scorecards_candidate_id ON scorecards(candidate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interviews_start_time ON interviews(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_interview_id ON evaluations(interview_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_candidates_job_id ON job_candidates(job_id)`,
}

// Migrate creates missing tables and adds columns introduced after the initial schema.
// It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	for _, m := range columnMigrations {
		exists, err := columnExists(ctx, db, m.table, m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		log.Printf("migration=add_column table=%s column=%s", m.table, m.column)
		if _, err := db.ExecContext(ctx, m.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("scan table info %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterate table info %s: %w", table, err)
	}
	return false, nil
}
