package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/octobees/hireloop/api/internal/config"
)

func TestOpenAIClient_CompleteJSON(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer key-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"title":"Engineer"}`}}},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.Client(), "openai", server.URL+"/", "key-1", "gpt-4o-mini", 0)
	out, err := client.CompleteJSON(context.Background(), Request{System: "sys", Prompt: "parse", Temperature: 0.3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"title":"Engineer"}` {
		t.Fatalf("unexpected content %q", out)
	}
	if captured.Model != "gpt-4o-mini" || len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("unexpected request %+v", captured)
	}
	if captured.ResponseFormat["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", captured.ResponseFormat)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.3 {
		t.Fatalf("expected temperature 0.3, got %v", captured.Temperature)
	}
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "rate limited"}})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.Client(), "groq", server.URL, "k", "m", 0)
	_, err := client.CompleteJSON(context.Background(), Request{Prompt: "x"})
	if err == nil || err.Error() != "groq error (429): rate limited" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.Client(), "openai", server.URL, "k", "m", 0)
	if _, err := client.CompleteJSON(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.CompleteJSON(context.Background(), Request{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg      config.LLMConfig
		provider string
		wantErr  bool
	}{
		"none":          {cfg: config.LLMConfig{Provider: "none"}, provider: "none"},
		"openai no key": {cfg: config.LLMConfig{Provider: "openai"}, provider: "none"},
		"openai":        {cfg: config.LLMConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"}, provider: "openai"},
		"groq":          {cfg: config.LLMConfig{Provider: "groq", APIKey: "k"}, provider: "groq"},
		"unknown":       {cfg: config.LLMConfig{Provider: "other"}, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			client, err := New(context.Background(), tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Provider() != tc.provider {
				t.Fatalf("expected provider %s, got %s", tc.provider, client.Provider())
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := map[string]struct {
		raw     string
		want    string
		wantErr bool
	}{
		"plain":      {raw: `{"a":"b"}`, want: "b"},
		"fenced":     {raw: "```json\n{\"a\":\"c\"}\n```", want: "c"},
		"bare fence": {raw: "```\n{\"a\":\"d\"}\n```", want: "d"},
		"empty":      {raw: "  ", want: ""},
		"garbage":    {raw: "not json", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var out struct {
				A string `json:"a"`
			}
			err := DecodeJSON(tc.raw, &out)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.A != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out.A)
			}
		})
	}
}
