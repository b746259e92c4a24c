package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
	"github.com/octobees/hireloop/api/internal/resume"
)

func multipartRequest(t *testing.T, target, field, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func createCandidate(t *testing.T, app *testApp, payload map[string]any) entity.Candidate {
	t.Helper()
	rec := app.call(t, app.candidates.Create, jsonRequest(t, http.MethodPost, "/api/candidates", payload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create candidate: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var c entity.Candidate
	decodeData(t, rec, &c)
	return c
}

func TestCandidatesHandler_Upload(t *testing.T) {
	app := newTestApp(t, 1<<20)
	app.llm.reply = `{"name":"Ada Lovelace","email":"ada@example.com","role":"Engineer","skills":["Go"],"yearsOfExperience":6.6}`
	job := createJob(t, app, map[string]any{"title": "Engineer"})

	long := strings.Repeat("x", resume.MaxChars+500)
	rec := app.call(t, app.candidates.Upload, multipartRequest(t, "/api/candidates/upload", "resume", "cv.txt", long, map[string]string{"jobId": job.ID}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var c entity.Candidate
	decodeData(t, rec, &c)
	if c.Name != "Ada Lovelace" || c.Source != "Resume Upload" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.FitScore == nil || *c.FitScore != 70 {
		t.Fatalf("expected provisional fit score 70, got %v", c.FitScore)
	}
	if c.JobID == nil || *c.JobID != job.ID {
		t.Fatalf("expected job id from form field, got %v", c.JobID)
	}
	if c.ResumeText == nil || !strings.HasSuffix(*c.ResumeText, resume.TruncationNotice) {
		t.Fatalf("expected truncated resume text")
	}
}

func TestCandidatesHandler_UploadErrors(t *testing.T) {
	app := newTestApp(t, 64)
	app.llm.reply = `{}`

	tests := map[string]struct {
		req        *http.Request
		expectCode int
	}{
		"missing file": {
			req:        multipartRequest(t, "/api/candidates/upload", "", "", "", map[string]string{"job_id": "x"}),
			expectCode: http.StatusBadRequest,
		},
		"too large": {
			req:        multipartRequest(t, "/api/candidates/upload", "resume", "cv.txt", strings.Repeat("a", 65), nil),
			expectCode: http.StatusRequestEntityTooLarge,
		},
		"empty resume": {
			req:        multipartRequest(t, "/api/candidates/upload", "resume", "cv.txt", "   ", nil),
			expectCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := app.call(t, app.candidates.Upload, tt.req)
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d (%s)", tt.expectCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCandidatesHandler_CreateAndUpdate(t *testing.T) {
	app := newTestApp(t, 0)
	c := createCandidate(t, app, map[string]any{
		"name":       "Grace Hopper",
		"email":      "Grace@Example.com",
		"experience": "Navy, then COBOL",
	})
	if c.Email != "grace@example.com" || c.Stage != entity.StageNew || c.Source != "Direct Application" {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	rec := app.call(t, app.candidates.Update, jsonRequest(t, http.MethodPut, "/api/candidates/"+c.ID, map[string]any{"stage": "hired"}), "id", c.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = app.call(t, app.candidates.Get, httptest.NewRequest(http.MethodGet, "/api/candidates/"+c.ID, nil), "id", c.ID)
	var fetched entity.Candidate
	decodeData(t, rec, &fetched)
	if fetched.Stage != entity.StageHired || fetched.Name != "Grace Hopper" {
		t.Fatalf("unexpected candidate after update: %+v", fetched)
	}
	if fetched.Experience != "Navy, then COBOL" {
		t.Fatalf("expected plain-text experience unchanged, got %#v", fetched.Experience)
	}

	rec = app.call(t, app.candidates.Update, jsonRequest(t, http.MethodPut, "/api/candidates/"+c.ID, map[string]any{"stage": "ghosted"}), "id", c.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown stage, got %d", rec.Code)
	}

	rec = app.call(t, app.candidates.Create, jsonRequest(t, http.MethodPost, "/api/candidates", map[string]any{"name": "No Email"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", rec.Code)
	}

	rec = app.call(t, app.candidates.Delete, httptest.NewRequest(http.MethodDelete, "/api/candidates/"+c.ID, nil), "id", c.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = app.call(t, app.candidates.Get, httptest.NewRequest(http.MethodGet, "/api/candidates/"+c.ID, nil), "id", c.ID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCandidatesHandler_Analyze(t *testing.T) {
	app := newTestApp(t, 0)
	app.llm.reply = `{"summary":"Strong","strengths":["Go"],"fitScore":{"overall":88},"dealBreakerCheck":{"passed":true},"recommendation":"advance"}`
	c := createCandidate(t, app, map[string]any{"name": "Linus", "email": "linus@example.com"})

	rec := app.call(t, app.candidates.Analyze, httptest.NewRequest(http.MethodPost, "/api/candidates/"+c.ID+"/analyze", nil), "id", c.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var analysis dto.CandidateAnalysis
	decodeData(t, rec, &analysis)
	if analysis.FitScore.Overall != 88 || !analysis.DealBreakerCheck.Passed || analysis.Gaps == nil {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}

	rec = app.call(t, app.candidates.Analyze, httptest.NewRequest(http.MethodPost, "/api/candidates/nope/analyze", nil), "id", "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
