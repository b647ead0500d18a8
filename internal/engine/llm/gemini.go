package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/irahardianto/codereview/internal/engine/failure"
	"github.com/irahardianto/codereview/internal/platform/logger"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// probePrompt is sent once at startup to confirm the credential is accepted upstream.
const probePrompt = "Test"

// GenerativeClient abstracts the Gemini generative AI client for testability.
type GenerativeClient interface {
	// GenerateContent sends a prompt and returns a response.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientConfig carries what a ClientFactory needs to build a client.
type ClientConfig struct {
	APIKey string
	// Timeout bounds every provider request. Zero means no timeout.
	Timeout time.Duration
}

// ClientFactory creates a GenerativeClient. Production code uses DefaultClientFactory;
// tests inject a factory that returns a mock.
type ClientFactory func(ctx context.Context, cfg ClientConfig) (GenerativeClient, error)

// genaiClient wraps the real genai.Client to satisfy GenerativeClient.
type genaiClient struct {
	inner *genai.Client
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.inner.Models.GenerateContent(ctx, model, contents, config)
}

// DefaultClientFactory creates a real Gemini API client.
// The request timeout is enforced by the HTTP transport.
func DefaultClientFactory(ctx context.Context, cfg ClientConfig) (GenerativeClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, err
	}
	return &genaiClient{inner: c}, nil
}

// Options configures Initialize.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// Factory creates the underlying client; nil means DefaultClientFactory.
	Factory ClientFactory
}

// Gateway is an authenticated, probed connection to the Gemini API.
// It is immutable after Initialize and safe for concurrent use.
type Gateway struct {
	client GenerativeClient
	model  string
}

// Initialize validates the credential, creates the client and sends one probe
// request. A non-nil error is always a *failure.Error; callers keep it to report
// why no model is available.
func Initialize(ctx context.Context, opts Options) (*Gateway, error) {
	log := logger.FromContext(ctx)

	if err := ValidateCredential(opts.APIKey); err != nil {
		log.Warn("credential rejected before probe", "kind", failure.KindOf(err))
		return nil, err
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	factory := opts.Factory
	if factory == nil {
		factory = DefaultClientFactory
	}

	client, err := factory(ctx, ClientConfig{
		APIKey:  strings.TrimSpace(opts.APIKey),
		Timeout: opts.Timeout,
	})
	if err != nil {
		return nil, failure.Wrap(failure.ConnectivityFailure, failure.ReasonNone, err)
	}

	log.Debug("probing model", "model", model)
	start := time.Now()

	resp, err := client.GenerateContent(ctx, model, genai.Text(probePrompt), nil)
	if err != nil {
		reason := Classify(err)
		log.Warn("probe failed", "model", model, "reason", reason, "error", err)
		return nil, failure.Wrap(failure.ConnectivityFailure, reason, err)
	}
	if _, err := extractText(resp); err != nil {
		log.Warn("probe returned no text", "model", model)
		return nil, failure.Wrap(failure.ConnectivityFailure, failure.ReasonNone, errors.New("API key test failed - empty response"))
	}

	log.Info("gateway initialized", "model", model, "duration_ms", time.Since(start).Milliseconds())
	return &Gateway{client: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *Gateway) Model() string {
	return g.model
}

// Generate sends one request and returns the raw text. There are no retries:
// a provider error surfaces immediately as UpstreamFailure.
func (g *Gateway) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	log := logger.FromContext(ctx)
	log.Info("starting generation", "model", g.model, "prompt_chars", len(prompt))
	start := time.Now()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	resp, err := g.client.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		reason := Classify(err)
		log.Error("generation failed", "model", g.model, "reason", reason, "error", err)
		return "", failure.Wrap(failure.UpstreamFailure, reason, err)
	}

	text, err := extractText(resp)
	if err != nil {
		log.Warn("generation returned no text", "model", g.model, "error", err)
		return "", failure.New(failure.EmptyModelResponse, "Empty response from Gemini API")
	}

	log.Info("generation complete",
		"model", g.model,
		"response_chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// extractText joins the non-thought text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content parts in response")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("empty text in response parts")
	}
	return b.String(), nil
}

var _ Generator = (*Gateway)(nil)
