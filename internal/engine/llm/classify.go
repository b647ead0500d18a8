package llm

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/irahardianto/codereview/internal/engine/failure"
	"google.golang.org/genai"
)

// Classify translates a provider error into a failure.Reason.
// Structured API errors are inspected first; message substrings are the last resort.
func Classify(err error) failure.Reason {
	if err == nil {
		return failure.ReasonNone
	}

	if apiErr, ok := asAPIError(err); ok {
		if reason := classifyAPIError(apiErr); reason != failure.ReasonNone {
			return reason
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return failure.ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return failure.ReasonTimeout
	}

	return classifyMessage(err.Error())
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func classifyAPIError(e genai.APIError) failure.Reason {
	for _, d := range e.Details {
		if r, ok := d["reason"].(string); ok && strings.EqualFold(r, "API_KEY_INVALID") {
			return failure.ReasonCredentialRejected
		}
	}

	switch {
	case e.Code == 401 || e.Status == "UNAUTHENTICATED":
		return failure.ReasonCredentialRejected
	case e.Code == 403 || e.Status == "PERMISSION_DENIED":
		return failure.ReasonCredentialRejected
	case e.Code == 429 || e.Status == "RESOURCE_EXHAUSTED":
		return failure.ReasonQuotaExhausted
	case e.Code == 404 || e.Status == "NOT_FOUND":
		return failure.ReasonModelNotFound
	case e.Code == 504 || e.Status == "DEADLINE_EXCEEDED":
		return failure.ReasonTimeout
	}

	// 400 is used for both bad keys and bad requests; the message tells them apart.
	return classifyMessage(e.Message)
}

// credentialMarkers are the provider messages seen for rejected keys.
var credentialMarkers = []string{
	"api_key_invalid",
	"api key not valid",
	"invalid api key",
	"api key expired",
}

func classifyMessage(msg string) failure.Reason {
	msg = strings.ToLower(msg)

	for _, m := range credentialMarkers {
		if strings.Contains(msg, m) {
			return failure.ReasonCredentialRejected
		}
	}

	switch {
	case strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "rate limit"):
		return failure.ReasonQuotaExhausted
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return failure.ReasonTimeout
	case strings.Contains(msg, "not found"):
		return failure.ReasonModelNotFound
	}
	return failure.ReasonNone
}
