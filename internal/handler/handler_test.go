package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/database"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/repository"
	"github.com/octobees/hireloop/api/internal/service"
)

// fakeLLM answers every call with reply, or with err when set.
type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) CompleteJSON(context.Context, llm.Request) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Provider() string { return "fake" }

type testApp struct {
	e          *echo.Echo
	llm        *fakeLLM
	jobs       *JobsHandler
	candidates *CandidatesHandler
	shortlist  *ShortlistHandler
	interviews *InterviewsHandler
	scorecards *ScorecardsHandler
	outreach   *OutreachHandler
	templates  *TemplatesHandler
	workspace  *WorkspaceHandler
	analytics  *AnalyticsHandler
}

func newTestApp(t *testing.T, uploadMaxBytes int64) *testApp {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "handler.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	jobsRepo := repository.NewSQLiteJobsRepository(db)
	candidatesRepo := repository.NewSQLiteCandidatesRepository(db)
	interviewsRepo := repository.NewSQLiteInterviewsRepository(db)
	outreachRepo := repository.NewSQLiteOutreachRepository(db)
	workspaceRepo := repository.NewSQLiteWorkspaceRepository(db)
	normalizer := service.NewNormalizer("US")
	fake := &fakeLLM{}

	return &testApp{
		e:          echo.New(),
		llm:        fake,
		jobs:       NewJobsHandler(service.NewJobsService(jobsRepo, candidatesRepo, fake)),
		candidates: NewCandidatesHandler(service.NewCandidatesService(candidatesRepo, jobsRepo, fake, normalizer), uploadMaxBytes),
		shortlist:  NewShortlistHandler(service.NewShortlistService(repository.NewSQLiteShortlistRepository(db), jobsRepo, candidatesRepo, fake)),
		interviews: NewInterviewsHandler(service.NewInterviewsService(interviewsRepo, candidatesRepo, jobsRepo, fake, normalizer)),
		scorecards: NewScorecardsHandler(service.NewScorecardsService(repository.NewSQLiteScorecardsRepository(db))),
		outreach:   NewOutreachHandler(service.NewOutreachService(outreachRepo, candidatesRepo, jobsRepo, workspaceRepo, llm.Disabled{}, nil, "HireLoop")),
		templates:  NewTemplatesHandler(service.NewTemplatesService(outreachRepo)),
		workspace:  NewWorkspaceHandler(service.NewWorkspaceService(workspaceRepo, normalizer)),
		analytics:  NewAnalyticsHandler(service.NewAnalyticsService(jobsRepo, candidatesRepo, interviewsRepo)),
	}
}

// call runs h against req with the given path parameters and returns the recorder.
func (a *testApp) call(t *testing.T, h echo.HandlerFunc, req *http.Request, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := a.e.NewContext(req, rec)
	if len(params)%2 != 0 {
		t.Fatalf("params must be name/value pairs")
	}
	var names, values []string
	for i := 0; i < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var payload struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(payload.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, payload.Data)
	}
}

func TestRespondError(t *testing.T) {
	tests := map[string]struct {
		err        error
		expectCode int
	}{
		"validation":    {err: fmt.Errorf("wrapped: %w", service.ValidationError{Message: "bad"}), expectCode: http.StatusBadRequest},
		"not found":     {err: repository.ErrTemplateNotFound, expectCode: http.StatusNotFound},
		"reference":     {err: fmt.Errorf("%w: candidate x", repository.ErrInvalidReference), expectCode: http.StatusBadRequest},
		"duplicate":     {err: repository.ErrEmailDuplicate, expectCode: http.StatusConflict},
		"no provider":   {err: fmt.Errorf("parse job: %w", llm.ErrNotConfigured), expectCode: http.StatusServiceUnavailable},
		"unknown error": {err: errors.New("disk full"), expectCode: http.StatusInternalServerError},
	}

	e := echo.New()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if err := respondError(c, tt.err, "failed"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}
}
