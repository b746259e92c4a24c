package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
	"github.com/octobees/hireloop/api/internal/resume"
)

func newCandidatesService(repos *testRepos, client llm.Client) *CandidatesService {
	return NewCandidatesService(repos.candidates, repos.jobs, client, NewNormalizer("US"))
}

func TestCandidatesService_Create(t *testing.T) {
	repos := newTestRepos(t)
	svc := newCandidatesService(repos, llm.Disabled{})
	ctx := context.Background()

	phone := "(415) 555-1234"
	c, err := svc.Create(ctx, dto.CreateCandidateRequest{
		Name:       " Ada Lovelace ",
		Email:      "Ada@Example.com",
		Phone:      &phone,
		Skills:     []string{"Math"},
		Experience: "Analytical engines",
	})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.Name)
	assert.Equal(t, "ada@example.com", stored.Email)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "+14155551234", *stored.Phone)
	assert.Equal(t, entity.StageNew, stored.Stage)
	assert.Equal(t, "Direct Application", stored.Source)
	assert.Equal(t, "Analytical engines", stored.Experience)
}

func TestCandidatesService_CreateValidation(t *testing.T) {
	svc := newCandidatesService(newTestRepos(t), llm.Disabled{})

	tests := map[string]dto.CreateCandidateRequest{
		"missing name":  {Email: "a@example.com"},
		"missing email": {Name: "Ada"},
		"bad email":     {Name: "Ada", Email: "not-an-email"},
		"bad stage":     {Name: "Ada", Email: "a@example.com", Stage: "archived"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestCandidatesService_UploadTruncatesLongResume(t *testing.T) {
	repos := newTestRepos(t)
	fake := &fakeLLM{reply: `{"name":"Grace Hopper","email":"GRACE@navy.mil","role":"Rear Admiral","skills":["COBOL"],"experience":[{"company":"Navy"}],"yearsOfExperience":42}`}
	svc := newCandidatesService(repos, fake)
	job := repos.seedJob(t, "Compiler Engineer")

	long := strings.Repeat("x", resume.MaxChars+5000)
	c, err := svc.Upload(context.Background(), "resume.txt", strings.NewReader(long), &job.ID)
	require.NoError(t, err)

	stored, err := repos.candidates.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResumeText)
	assert.True(t, strings.HasSuffix(*stored.ResumeText, resume.TruncationNotice))
	assert.Equal(t, resume.MaxChars+utf8.RuneCountInString(resume.TruncationNotice), utf8.RuneCountInString(*stored.ResumeText))
	assert.True(t, strings.HasSuffix(fake.lastRequest(t).Prompt, resume.TruncationNotice))

	assert.Equal(t, "Grace Hopper", stored.Name)
	assert.Equal(t, "grace@navy.mil", stored.Email)
	assert.Equal(t, []string{"COBOL"}, stored.Skills)
	require.NotNil(t, stored.FitScore)
	assert.Equal(t, 70, *stored.FitScore)
	require.NotNil(t, stored.YearsOfExperience)
	assert.Equal(t, 42, *stored.YearsOfExperience)
	require.NotNil(t, stored.JobID)
	assert.Equal(t, job.ID, *stored.JobID)
	assert.Equal(t, []any{map[string]any{"company": "Navy"}}, stored.Experience)
}

func TestCandidatesService_UploadDefaults(t *testing.T) {
	repos := newTestRepos(t)
	svc := newCandidatesService(repos, &fakeLLM{reply: `{}`})

	c, err := svc.Upload(context.Background(), "cv.md", strings.NewReader("some resume"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", c.Name)
	assert.Equal(t, "General Position", c.Role)
	assert.Equal(t, "unknown-"+c.ID+"@example.com", c.Email)
	assert.Equal(t, []string{}, c.Skills)
	require.NotNil(t, c.ResumeText)
	assert.Equal(t, "some resume", *c.ResumeText)
}

func TestCandidatesService_UploadLooselyTypedReply(t *testing.T) {
	repos := newTestRepos(t)
	fake := &fakeLLM{reply: `{"name":"Ada","phone":4155551234,"yearsOfExperience":"5","skills":[{"name":"Go"},"SQL"]}`}

	c, err := newCandidatesService(repos, fake).Upload(context.Background(), "cv.txt", strings.NewReader("resume"), nil)
	require.NoError(t, err)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+14155551234", *c.Phone)
	require.NotNil(t, c.YearsOfExperience)
	assert.Equal(t, 5, *c.YearsOfExperience)
	assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
}

func TestCandidatesService_UploadErrors(t *testing.T) {
	repos := newTestRepos(t)

	_, err := newCandidatesService(repos, &fakeLLM{reply: `{}`}).Upload(context.Background(), "cv.txt", strings.NewReader("  "), nil)
	var vErr ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = newCandidatesService(repos, llm.Disabled{}).Upload(context.Background(), "cv.txt", strings.NewReader("resume"), nil)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestCandidatesService_UpdateStage(t *testing.T) {
	repos := newTestRepos(t)
	svc := newCandidatesService(repos, llm.Disabled{})
	ctx := context.Background()
	c := repos.seedCandidate(t, "barbara", nil)

	hired := entity.StageHired
	_, err := svc.Update(ctx, c.ID, dto.UpdateCandidateRequest{Stage: &hired})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageHired, stored.Stage)
	assert.Equal(t, c.Name, stored.Name)
	assert.Equal(t, c.Email, stored.Email)
	assert.Equal(t, c.Skills, stored.Skills)

	bad := "archived"
	_, err = svc.Update(ctx, c.ID, dto.UpdateCandidateRequest{Stage: &bad})
	var vErr ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Update(ctx, c.ID, dto.UpdateCandidateRequest{})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Update(ctx, "missing", dto.UpdateCandidateRequest{Stage: &hired})
	assert.ErrorIs(t, err, repository.ErrCandidateNotFound)
}

func TestCandidatesService_Analyze(t *testing.T) {
	repos := newTestRepos(t)
	fake := &fakeLLM{reply: `{"summary":"Strong","fitScore":{"overall":88.5},"dealBreakerCheck":{"passed":true}}`}
	svc := newCandidatesService(repos, fake)
	ctx := context.Background()

	own := repos.seedJob(t, "Own Job")
	override := repos.seedJob(t, "Override Job")
	c := repos.seedCandidate(t, "margaret", &own.ID)

	analysis, err := svc.Analyze(ctx, c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Strong", analysis.Summary)
	assert.InDelta(t, 88.5, analysis.FitScore.Overall, 0.001)
	assert.Equal(t, []string{}, analysis.Strengths)
	assert.Equal(t, []string{}, analysis.DealBreakerCheck.Details)
	assert.Contains(t, fake.lastRequest(t).Prompt, "Own Job")

	_, err = svc.Analyze(ctx, c.ID, &override.ID)
	require.NoError(t, err)
	assert.Contains(t, fake.lastRequest(t).Prompt, "Override Job")

	missing := "missing"
	_, err = svc.Analyze(ctx, c.ID, &missing)
	assert.ErrorIs(t, err, repository.ErrJobNotFound)

	_, err = svc.Analyze(ctx, "missing", nil)
	assert.ErrorIs(t, err, repository.ErrCandidateNotFound)

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.FitScore)
}
