package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/octobees/hireloop/api/internal/llm"
)

// completeJSON runs one model call and decodes its JSON reply into out.
func completeJSON(ctx context.Context, client llm.Client, op string, req llm.Request, out any) error {
	raw, err := client.CompleteJSON(ctx, req)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			log.Printf("llm op=%s provider=%s error=%v", op, client.Provider(), err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := llm.DecodeJSON(raw, out); err != nil {
		log.Printf("llm op=%s provider=%s decode_error=%v", op, client.Provider(), err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// clampScore rounds a model score into 0-100.
func clampScore(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
