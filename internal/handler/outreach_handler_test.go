package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/octobees/hireloop/api/internal/dto"
	"github.com/octobees/hireloop/api/internal/entity"
)

func TestOutreachHandler(t *testing.T) {
	app := newTestApp(t, 0)
	job := createJob(t, app, map[string]any{"title": "SRE"})
	c := createCandidate(t, app, map[string]any{"name": "Margaret Hamilton", "email": "margaret@example.com", "job_id": job.ID})

	rec := app.call(t, app.outreach.GenerateEmail, jsonRequest(t, http.MethodPost, "/api/outreach/generate-email", map[string]any{"candidateId": c.ID, "jobId": job.ID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var draft dto.GeneratedEmail
	decodeData(t, rec, &draft)
	if draft.Subject != "SRE opportunity at HireLoop" || !strings.HasPrefix(draft.Body, "Hi Margaret,") {
		t.Fatalf("unexpected fallback email: %+v", draft)
	}

	rec = app.call(t, app.outreach.GenerateEmail, jsonRequest(t, http.MethodPost, "/api/outreach/generate-email", map[string]any{"candidateId": c.ID, "jobId": "nope"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown job, got %d", rec.Code)
	}

	rec = app.call(t, app.outreach.CreateEmail, jsonRequest(t, http.MethodPost, "/api/outreach/emails", map[string]any{"candidateId": c.ID, "subject": draft.Subject, "body": draft.Body}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var email entity.OutreachEmail
	decodeData(t, rec, &email)
	if email.Status != entity.OutreachSent || email.SequenceDay != 0 || email.SentAt == nil {
		t.Fatalf("unexpected email: %+v", email)
	}

	rec = app.call(t, app.outreach.UpdateEmailStatus, jsonRequest(t, http.MethodPut, "/api/outreach/emails/"+email.ID+"/status", map[string]any{"status": "replied"}), "id", email.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decodeData(t, rec, &email)
	if email.RepliedAt == nil {
		t.Fatalf("expected replied_at to be set")
	}

	rec = app.call(t, app.outreach.ListEmails, httptest.NewRequest(http.MethodGet, "/api/outreach/emails", nil))
	var emails []entity.OutreachEmail
	decodeData(t, rec, &emails)
	if len(emails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(emails))
	}

	rec = app.call(t, app.outreach.DeleteEmail, httptest.NewRequest(http.MethodDelete, "/api/outreach/emails/"+email.ID, nil), "id", email.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = app.call(t, app.outreach.DeleteEmail, httptest.NewRequest(http.MethodDelete, "/api/outreach/emails/"+email.ID, nil), "id", email.ID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTemplatesHandler(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.call(t, app.templates.Create, jsonRequest(t, http.MethodPost, "/api/templates", map[string]any{"name": "Intro", "subject": "Hi", "body": "Hello"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var tpl entity.EmailTemplate
	decodeData(t, rec, &tpl)

	tests := map[string]struct {
		id         string
		payload    map[string]any
		expectCode int
	}{
		"missing category": {id: tpl.ID, payload: map[string]any{"name": "Intro", "subject": "Hi", "body": "Hello"}, expectCode: http.StatusBadRequest},
		"unknown id":       {id: "nope", payload: map[string]any{"name": "a", "subject": "b", "body": "c", "category": "d"}, expectCode: http.StatusNotFound},
		"full update":      {id: tpl.ID, payload: map[string]any{"name": "Intro", "subject": "Hi", "body": "Hello", "category": "follow-up"}, expectCode: http.StatusOK},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := app.call(t, app.templates.Update, jsonRequest(t, http.MethodPut, "/api/templates/"+tt.id, tt.payload), "id", tt.id)
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}

	rec = app.call(t, app.templates.Delete, httptest.NewRequest(http.MethodDelete, "/api/templates/nope", nil), "id", "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = app.call(t, app.templates.List, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	var templates []entity.EmailTemplate
	decodeData(t, rec, &templates)
	if len(templates) != 1 || templates[0].Category != "follow-up" {
		t.Fatalf("unexpected templates: %+v", templates)
	}
}
