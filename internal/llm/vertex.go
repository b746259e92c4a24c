package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
)

// VertexClient wraps the Vertex AI Gemini API.
type VertexClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewVertexClient creates a Gemini client for the given project and location.
func NewVertexClient(ctx context.Context, projectID, location, model string, timeout time.Duration) (*VertexClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("vertex project must not be empty")
	}
	if location == "" {
		location = "us-central1"
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}
	return &VertexClient{client: client, model: model, timeout: timeout}, nil
}

// CompleteJSON generates content with a JSON response MIME type.
func (v *VertexClient) CompleteJSON(ctx context.Context, req Request) (string, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	// GenerativeModel carries per-call settings, so build one per request.
	model := v.client.GenerativeModel(v.model)
	model.ResponseMIMEType = "application/json"
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	log.Printf("llm provider=vertex model=%s latency=%s", v.model, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates returned")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Provider implements Client.
func (v *VertexClient) Provider() string { return "vertex" }

// Close closes the Vertex AI client.
func (v *VertexClient) Close() error {
	return v.client.Close()
}

var _ Client = (*VertexClient)(nil)
