package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/repository"
)

func TestShortlistService_Evaluate(t *testing.T) {
	repos := newTestRepos(t)
	fake := &fakeLLM{reply: `{"overall":82.6,"breakdown":{"skills":90},"reasoning":"Strong Go","strengths":["Go"," "],"concerns":["No Kubernetes"]}`}
	svc := NewShortlistService(repos.shortlist, repos.jobs, repos.candidates, fake)
	ctx := context.Background()
	job := repos.seedJob(t, "Platform Engineer")
	c := repos.seedCandidate(t, "ada", nil)

	entry, err := svc.Evaluate(ctx, job.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShortlistShortlisted, entry.Status)
	require.NotNil(t, entry.MatchScore)
	assert.Equal(t, 83, *entry.MatchScore)
	assert.Equal(t, []string{"Go"}, entry.Strengths)
	assert.Equal(t, []string{"No Kubernetes"}, entry.Gaps)
	assert.Equal(t, "ada", entry.CandidateName)
	assert.Contains(t, fake.lastRequest(t).Prompt, "Platform Engineer")

	stored, err := repos.candidates.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.FitScore)
	assert.Equal(t, 83, *stored.FitScore)
	assert.Equal(t, "Strong Go", stored.FitScoreBreakdown["reasoning"])

	fake.reply = `{"overall":40,"strengths":[],"concerns":["Junior"]}`
	entry, err = svc.Evaluate(ctx, job.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShortlistReviewed, entry.Status)

	entries, err := svc.List(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 40, *entries[0].MatchScore)
}

func TestShortlistService_EvaluateErrors(t *testing.T) {
	repos := newTestRepos(t)
	fake := &fakeLLM{err: errors.New("model down")}
	svc := NewShortlistService(repos.shortlist, repos.jobs, repos.candidates, fake)
	ctx := context.Background()
	job := repos.seedJob(t, "Analyst")
	c := repos.seedCandidate(t, "bob", nil)

	_, err := svc.Evaluate(ctx, job.ID, " ")
	var vErr ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Evaluate(ctx, "missing", c.ID)
	assert.ErrorIs(t, err, repository.ErrJobNotFound)

	_, err = svc.Evaluate(ctx, job.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrCandidateNotFound)

	_, err = svc.Evaluate(ctx, job.ID, c.ID)
	assert.Error(t, err)

	_, err = svc.List(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrJobNotFound)
}

func TestShortlistService_UpdateStatus(t *testing.T) {
	repos := newTestRepos(t)
	fake := &fakeLLM{reply: `{"overall":75}`}
	svc := NewShortlistService(repos.shortlist, repos.jobs, repos.candidates, fake)
	ctx := context.Background()
	job := repos.seedJob(t, "Designer")
	c := repos.seedCandidate(t, "cy", nil)

	_, err := svc.Evaluate(ctx, job.ID, c.ID)
	require.NoError(t, err)

	entry, err := svc.UpdateStatus(ctx, job.ID, c.ID, "contacted")
	require.NoError(t, err)
	assert.Equal(t, entity.ShortlistContacted, entry.Status)

	_, err = svc.UpdateStatus(ctx, job.ID, c.ID, "hired")
	var vErr ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.UpdateStatus(ctx, job.ID, "missing", "rejected")
	assert.ErrorIs(t, err, repository.ErrShortlistEntryNotFound)
}
