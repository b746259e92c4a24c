package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpen_Validation(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenAndMigrate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "hireloop.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run must be a no-op
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate twice: %v", err)
	}

	for _, tc := range []struct{ table, column string }{
		{"candidates", "job_id"},
		{"jobs", "deal_breakers"},
		{"jobs", "auto_sourcing_enabled"},
		{"jobs", "sourcing_threshold"},
		{"users", "password_hash"},
	} {
		ok, err := columnExists(ctx, db, tc.table, tc.column)
		if err != nil {
			t.Fatalf("column lookup: %v", err)
		}
		if !ok {
			t.Fatalf("expected column %s.%s", tc.table, tc.column)
		}
	}

	var fk int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("expected foreign keys enabled")
	}
}

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO email_templates (id, name, subject, body, category) VALUES ('t1', 'n', 's', 'b', 'c')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_templates`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row on shared connection, got %d", count)
	}
}
