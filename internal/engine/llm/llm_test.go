package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/irahardianto/codereview/internal/engine/failure"
	"google.golang.org/genai"
)

// --- ValidateCredential Tests ---

func TestValidateCredential(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want failure.Kind
	}{
		{"empty", "", failure.MissingCredential},
		{"whitespace", " \t\n", failure.MissingCredential},
		{"wrong prefix", "sk-abcdef", failure.InvalidCredentialFormat},
		{"lowercase prefix", "aizasyabcdef", failure.InvalidCredentialFormat},
		{"prefix only in the middle", "xxAIzaSyabc", failure.InvalidCredentialFormat},
		{"valid", "AIzaSyD-abc123", ""},
		{"valid with surrounding space", "  AIzaSyD-abc123\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredential(tt.key)
			if got := failure.KindOf(err); got != tt.want {
				t.Errorf("ValidateCredential(%q) kind = %q, want %q (err: %v)", tt.key, got, tt.want, err)
			}
		})
	}
}

func TestValidateCredential_MessagesNameTheVariable(t *testing.T) {
	err := ValidateCredential("")
	if !strings.Contains(err.Error(), CredentialEnv) {
		t.Errorf("expected message to mention %s, got %q", CredentialEnv, err.Error())
	}

	err = ValidateCredential("nope")
	if !strings.Contains(err.Error(), CredentialPrefix) {
		t.Errorf("expected message to mention prefix, got %q", err.Error())
	}
}

// --- Classify Tests ---

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify_StructuredAPIErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want failure.Reason
	}{
		{
			name: "api key invalid detail",
			err: genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "bad request",
				Details: []map[string]any{{"@type": "type.googleapis.com/google.rpc.ErrorInfo", "reason": "API_KEY_INVALID"}}},
			want: failure.ReasonCredentialRejected,
		},
		{"unauthenticated", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, failure.ReasonCredentialRejected},
		{"permission denied", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}, failure.ReasonCredentialRejected},
		{"quota", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, failure.ReasonQuotaExhausted},
		{"model not found", genai.APIError{Code: 404, Status: "NOT_FOUND"}, failure.ReasonModelNotFound},
		{"deadline", genai.APIError{Code: 504, Status: "DEADLINE_EXCEEDED"}, failure.ReasonTimeout},
		{"400 with key message", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}, failure.ReasonCredentialRejected},
		{"400 other", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "Request contains an invalid argument."}, failure.ReasonNone},
		{"500", genai.APIError{Code: 500, Status: "INTERNAL", Message: "An internal error has occurred."}, failure.ReasonNone},
		{"pointer", &genai.APIError{Code: 401}, failure.ReasonCredentialRejected},
		{"wrapped", fmt.Errorf("calling model: %w", genai.APIError{Code: 429}), failure.ReasonQuotaExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_TransportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want failure.Reason
	}{
		{"nil", nil, failure.ReasonNone},
		{"deadline", context.DeadlineExceeded, failure.ReasonTimeout},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), failure.ReasonTimeout},
		{"net timeout", &url.Error{Op: "Post", URL: "https://generativelanguage.googleapis.com", Err: timeoutErr{}}, failure.ReasonTimeout},
		{"cancelled", context.Canceled, failure.ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_MessageFallback(t *testing.T) {
	tests := []struct {
		msg  string
		want failure.Reason
	}{
		{"400 API_KEY_INVALID", failure.ReasonCredentialRejected},
		{"API key not valid. Please pass a valid API key.", failure.ReasonCredentialRejected},
		{"Invalid API key provided", failure.ReasonCredentialRejected},
		{"API key expired. Please renew the API key.", failure.ReasonCredentialRejected},
		{"You exceeded your current quota", failure.ReasonQuotaExhausted},
		{"RESOURCE_EXHAUSTED", failure.ReasonQuotaExhausted},
		{"rate limit reached", failure.ReasonQuotaExhausted},
		{"context deadline exceeded", failure.ReasonTimeout},
		{"Client.Timeout exceeded while awaiting headers", failure.ReasonTimeout},
		{"models/gemini-0 is not found for API version v1beta", failure.ReasonModelNotFound},
		{"connection reset by peer", failure.ReasonNone},
		{"", failure.ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := Classify(errors.New(tt.msg)); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}

// --- extractText Tests ---

func TestExtractText_NilResponse(t *testing.T) {
	_, err := extractText(nil)
	if err == nil {
		t.Error("expected error for nil response")
	}
}

func TestExtractText_EmptyCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{},
	}
	_, err := extractText(resp)
	if err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestExtractText_NilContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
		},
	}
	_, err := extractText(resp)
	if err == nil {
		t.Error("expected error for nil content")
	}
}

func TestExtractText_EmptyParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{}}},
		},
	}
	_, err := extractText(resp)
	if err == nil {
		t.Error("expected error for empty parts")
	}
}

func TestExtractText_EmptyText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: ""},
			}}},
		},
	}
	_, err := extractText(resp)
	if err == nil {
		t.Error("expected error for empty text")
	}
}

func TestExtractText_JoinsPartsAndSkipsThoughts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking about it", Thought: true},
				{Text: "## Summary\n"},
				nil,
				{Text: "Adds two numbers."},
			}}},
		},
	}
	text, err := extractText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "## Summary\nAdds two numbers." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractText_OnlyThoughts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "hmm", Thought: true},
			}}},
		},
	}
	if _, err := extractText(resp); err == nil {
		t.Error("expected error when only thought parts are present")
	}
}

// --- MockGenerator Tests ---

func TestMockGenerator_RecordsCalls(t *testing.T) {
	mock := &MockGenerator{Text: "mock review"}

	text, err := mock.Generate(context.Background(), "prompt", GenerationConfig{Temperature: 0.3, MaxOutputTokens: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "mock review" {
		t.Errorf("unexpected text: %q", text)
	}
	if mock.Calls() != 1 {
		t.Errorf("expected 1 call, got %d", mock.Calls())
	}
	if mock.LastPrompt() != "prompt" {
		t.Errorf("unexpected last prompt: %q", mock.LastPrompt())
	}
	if mock.LastConfig().MaxOutputTokens != 10 {
		t.Errorf("unexpected last config: %+v", mock.LastConfig())
	}
	if mock.Model() != "mock-model" {
		t.Errorf("expected default mock model name, got %q", mock.Model())
	}
}
