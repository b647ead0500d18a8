// Package llm owns the connection to the generative model provider.
package llm

import (
	"context"
)

// GenerationConfig bounds a single generation request.
type GenerationConfig struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Generator abstracts single-turn text generation for testability.
type Generator interface {
	// Generate sends a prompt to the model and returns the raw text.
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
	// Model returns the model name used for generation.
	Model() string
}
