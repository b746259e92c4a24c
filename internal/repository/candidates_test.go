package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/hireloop/api/internal/entity"
)

func TestCandidatesRepository_CreateDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()

	c := &entity.Candidate{Name: "Grace", Email: "grace@example.com", Role: "Engineer"}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageNew, got.Stage)
	assert.Equal(t, "Direct Application", got.Source)
	assert.Equal(t, []string{}, got.Skills)
	assert.Nil(t, got.FitScore)
	assert.Nil(t, got.Experience)
}

func TestCandidatesRepository_UnknownJob(t *testing.T) {
	db := newTestDB(t)
	missing := "no-such-job"
	err := NewSQLiteCandidatesRepository(db).Create(context.Background(), &entity.Candidate{Name: "x", Email: "x@example.com", Role: "r", JobID: &missing})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCandidatesRepository_PlainTextExperience(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedCandidate(t, db, "linus", nil)

	_, err := db.ExecContext(ctx, `UPDATE candidates SET experience = ?, education = ? WHERE id = ?`,
		"Ten years of kernel work", `{"degree":"MSc"}`, c.ID)
	require.NoError(t, err)

	got, err := NewSQLiteCandidatesRepository(db).FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ten years of kernel work", got.Experience)
	assert.Equal(t, map[string]any{"degree": "MSc"}, got.Education)
}

func TestCandidatesRepository_StringFieldsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()

	tests := map[string]string{
		"numeric text": "2020",
		"null text":    "null",
		"json text":    `{"degree":"MSc"}`,
		"plain text":   "Ten years of kernel work",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			c := &entity.Candidate{Name: name, Email: "rt@example.com", Role: "Engineer", Experience: text, Education: text}
			require.NoError(t, repo.Create(ctx, c))

			got, err := repo.FindByID(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, text, got.Experience)
			assert.Equal(t, text, got.Education)
		})
	}
}

func TestCandidatesRepository_UpdateStageKeepsOtherFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()

	score := 82
	years := 6
	c := &entity.Candidate{
		Name: "Ada", Email: "ada@example.com", Role: "Engineer",
		Skills: []string{"Go"}, FitScore: &score, YearsOfExperience: &years,
		Experience: []any{map[string]any{"company": "Acme"}},
	}
	require.NoError(t, repo.Create(ctx, c))

	stage := entity.StageHired
	updated, err := repo.Update(ctx, c.ID, CandidateUpdate{Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, entity.StageHired, updated.Stage)

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageHired, got.Stage)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Email, got.Email)
	assert.Equal(t, []string{"Go"}, got.Skills)
	require.NotNil(t, got.FitScore)
	assert.Equal(t, 82, *got.FitScore)
	require.NotNil(t, got.YearsOfExperience)
	assert.Equal(t, 6, *got.YearsOfExperience)
	assert.Equal(t, []any{map[string]any{"company": "Acme"}}, got.Experience)

	_, err = repo.Update(ctx, "missing", CandidateUpdate{Stage: &stage})
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestCandidatesRepository_CreateBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()
	job := seedJob(t, db, "Data Engineer")

	score := 90
	first := &entity.Candidate{ID: newID(), Name: "A", Email: "a@example.com", Role: "DE", JobID: &job.ID, FitScore: &score, Source: "AI Sourcing"}
	second := &entity.Candidate{ID: newID(), Name: "B", Email: "b@example.com", Role: "DE", JobID: &job.ID, Source: "AI Sourcing"}
	links := []*entity.JobCandidate{
		{JobID: job.ID, CandidateID: first.ID, MatchScore: &score, Status: "shortlisted"},
		{JobID: job.ID, CandidateID: second.ID, Status: "sourced"},
	}
	require.NoError(t, repo.CreateBatch(ctx, []*entity.Candidate{first, second}, links))

	shortlist, err := NewSQLiteShortlistRepository(db).ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, shortlist, 2)
	assert.Equal(t, first.ID, shortlist[0].CandidateID)
	assert.Equal(t, "A", shortlist[0].CandidateName)
	assert.Equal(t, "sourced", shortlist[1].Status)
}

func TestCandidatesRepository_CreateBatchRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()

	c := &entity.Candidate{ID: newID(), Name: "A", Email: "a@example.com", Role: "DE"}
	links := []*entity.JobCandidate{{JobID: "missing-job", CandidateID: c.ID, Status: "sourced"}}
	err := repo.CreateBatch(ctx, []*entity.Candidate{c}, links)
	require.ErrorIs(t, err, ErrInvalidReference)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCandidatesRepository_CountByStage(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()
	job := seedJob(t, db, "PM")

	seedCandidate(t, db, "one", &job.ID)
	seedCandidate(t, db, "two", &job.ID)
	other := seedCandidate(t, db, "three", nil)
	stage := entity.StageOffer
	_, err := repo.Update(ctx, other.ID, CandidateUpdate{Stage: &stage})
	require.NoError(t, err)

	scoped, err := repo.CountByStage(ctx, &job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.Total)
	assert.Equal(t, 2, scoped.ByStage[entity.StageNew])
	assert.Equal(t, 0, scoped.ByStage[entity.StageOffer])

	all, err := repo.CountByStage(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, 1, all.ByStage[entity.StageOffer])
}

func TestCandidatesRepository_AverageFitScore(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()

	avg, err := repo.AverageFitScore(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	for _, s := range []int{60, 80} {
		score := s
		require.NoError(t, repo.Create(ctx, &entity.Candidate{Name: "n", Email: "n@example.com", Role: "r", FitScore: &score}))
	}
	seedCandidate(t, db, "unscored", nil)

	avg, err = repo.AverageFitScore(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, avg, 0.001)
}

func TestCandidatesRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCandidatesRepository(db)
	ctx := context.Background()
	c := seedCandidate(t, db, "gone", nil)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrCandidateNotFound)
}
