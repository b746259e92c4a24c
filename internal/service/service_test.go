package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octobees/hireloop/api/internal/database"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/mailer"
	"github.com/octobees/hireloop/api/internal/repository"
)

// fakeLLM answers every call with reply, or with err when set.
type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.Request
}

func (f *fakeLLM) CompleteJSON(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) lastRequest(t *testing.T) llm.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "expected a model call")
	return f.requests[len(f.requests)-1]
}

type stubMailer struct {
	sent []mailer.Message
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testRepos struct {
	db         *sql.DB
	jobs       *repository.SQLiteJobsRepository
	candidates *repository.SQLiteCandidatesRepository
	shortlist  *repository.SQLiteShortlistRepository
	interviews *repository.SQLiteInterviewsRepository
	scorecards *repository.SQLiteScorecardsRepository
	outreach   *repository.SQLiteOutreachRepository
	workspace  *repository.SQLiteWorkspaceRepository
	users      *repository.SQLiteUsersRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	return &testRepos{
		db:         db,
		jobs:       repository.NewSQLiteJobsRepository(db),
		candidates: repository.NewSQLiteCandidatesRepository(db),
		shortlist:  repository.NewSQLiteShortlistRepository(db),
		interviews: repository.NewSQLiteInterviewsRepository(db),
		scorecards: repository.NewSQLiteScorecardsRepository(db),
		outreach:   repository.NewSQLiteOutreachRepository(db),
		workspace:  repository.NewSQLiteWorkspaceRepository(db),
		users:      repository.NewSQLiteUsersRepository(db),
	}
}

func (r *testRepos) seedJob(t *testing.T, title string) *entity.Job {
	t.Helper()
	job := &entity.Job{
		Title:             title,
		Department:        "Engineering",
		Location:          "Remote",
		Type:              "Full-time",
		Status:            entity.JobStatusPublished,
		Description:       "Build APIs",
		Requirements:      []string{"Go"},
		Responsibilities:  []string{},
		SourcingThreshold: 70,
	}
	require.NoError(t, r.jobs.Create(context.Background(), job))
	return job
}

func (r *testRepos) seedCandidate(t *testing.T, name string, jobID *string) *entity.Candidate {
	t.Helper()
	c := &entity.Candidate{Name: name, Email: "c-" + name + "@example.com", Role: "Engineer", JobID: jobID, Skills: []string{"Go"}}
	require.NoError(t, r.candidates.Create(context.Background(), c))
	return c
}
