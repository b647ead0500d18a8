// Package review turns a code snippet into a formatted model review.
package review

import (
	"context"
	"time"

	"github.com/irahardianto/codereview/internal/engine/failure"
	"github.com/irahardianto/codereview/internal/engine/llm"
	"github.com/irahardianto/codereview/internal/platform/logger"
)

// Generation is the fixed configuration every review is generated with.
// Thinking models spend part of MaxOutputTokens on reasoning, so a long review
// can stop at the ceiling with no text and surface as EmptyModelResponse.
var Generation = llm.GenerationConfig{
	Temperature:     0.3,
	MaxOutputTokens: 4000,
}

// Result is a successful review.
type Result struct {
	// Text is the header followed by the raw model output.
	Text string
	// Review is the raw model output.
	Review      string
	GeneratedAt time.Time
	// InputLength is the raw snippet length in characters.
	InputLength int
	Model       string
}

// Reviewer runs the review pipeline. It is safe for concurrent use.
type Reviewer struct {
	gen   llm.Generator
	clock func() time.Time
}

// Option configures a Reviewer.
type Option func(*Reviewer)

// WithClock overrides the clock used for the header timestamp.
func WithClock(clock func() time.Time) Option {
	return func(r *Reviewer) {
		r.clock = clock
	}
}

// New creates a Reviewer. A nil gen means no model is available and every
// valid snippet fails with ModelUnavailable.
func New(gen llm.Generator, opts ...Option) *Reviewer {
	r := &Reviewer{gen: gen, clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether a model is attached.
func (r *Reviewer) Available() bool {
	return r.gen != nil
}

// Model returns the attached model name, or "" if none.
func (r *Reviewer) Model() string {
	if r.gen == nil {
		return ""
	}
	return r.gen.Model()
}

// Review validates the snippet, asks the model for a review and prepends the
// metadata header. Every failure is a *failure.Error.
func (r *Reviewer) Review(ctx context.Context, snippet string) (*Result, error) {
	log := logger.FromContext(ctx)

	if err := Validate(snippet); err != nil {
		log.Debug("snippet rejected", "kind", failure.KindOf(err))
		return nil, err
	}

	if r.gen == nil {
		return nil, failure.New(failure.ModelUnavailable, "Gemini model not initialized. Please check your API key.")
	}

	length := Length(snippet)
	log.Info("review started", "model", r.gen.Model(), "input_length", length)

	text, err := r.gen.Generate(ctx, BuildPrompt(snippet), Generation)
	if err != nil {
		if failure.KindOf(err) == "" {
			err = failure.Wrap(failure.UpstreamFailure, llm.Classify(err), err)
		}
		return nil, err
	}
	if text == "" {
		return nil, failure.New(failure.EmptyModelResponse, "Empty response from Gemini API")
	}

	at := r.clock()
	log.Info("review complete", "model", r.gen.Model(), "review_chars", len(text))

	return &Result{
		Text:        FormatHeader(at, length) + text,
		Review:      text,
		GeneratedAt: at,
		InputLength: length,
		Model:       r.gen.Model(),
	}, nil
}
