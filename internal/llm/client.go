package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/hireloop/api/internal/config"
)

// ErrNotConfigured is returned by the disabled client when no provider is set up.
var ErrNotConfigured = errors.New("ai provider is not configured")

// Request is a single chat-completion round trip. The reply is always requested as a JSON object.
type Request struct {
	System string
	Prompt string
	// Temperature of zero leaves the provider default in place.
	Temperature float32
	MaxTokens   int
}

// Client issues JSON-mode completions against a language model.
type Client interface {
	CompleteJSON(ctx context.Context, req Request) (string, error)
	Provider() string
}

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return Disabled{}, nil
		}
		return NewOpenAIClient(nil, "openai", orDefault(cfg.BaseURL, OpenAIBaseURL), cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "groq":
		if cfg.APIKey == "" {
			return Disabled{}, nil
		}
		return NewOpenAIClient(nil, "groq", orDefault(cfg.BaseURL, GroqBaseURL), cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "vertex":
		return NewVertexClient(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.Model, cfg.Timeout)
	case "", "none":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// Disabled is the client used when no provider is configured.
type Disabled struct{}

// CompleteJSON always fails with ErrNotConfigured.
func (Disabled) CompleteJSON(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// Provider implements Client.
func (Disabled) Provider() string { return "none" }

// DecodeJSON strips markdown fences some models wrap around JSON and decodes the
// remaining text into out. An empty reply decodes as an empty object.
func DecodeJSON(raw string, out any) error {
	cleaned := cleanMarkdownJSON(raw)
	if cleaned == "" {
		cleaned = "{}"
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}

func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
