package formatter

import (
	"encoding/json"
	"time"

	"github.com/irahardianto/codereview/internal/engine/failure"
)

// JSONFormatter outputs review reports as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ReviewPayload is the JSON shape of a successful review.
type ReviewPayload struct {
	Review      string    `json:"review"`
	GeneratedAt time.Time `json:"generated_at"`
	InputLength int       `json:"input_length"`
	Model       string    `json:"model,omitempty"`
}

// ErrorPayload is the JSON shape of a failed review.
type ErrorPayload struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the failure tag and the message shown to users.
type ErrorBody struct {
	Kind     failure.Kind   `json:"kind,omitempty"`
	Reason   failure.Reason `json:"reason,omitempty"`
	Message  string         `json:"message"`
	Guidance string         `json:"guidance"`
}

// Payload returns the JSON-serializable value for a report.
func Payload(report Report) any {
	if report.Err != nil {
		kind := failure.KindOf(report.Err)
		if kind == "" {
			kind = failure.UpstreamFailure
		}
		return ErrorPayload{Error: ErrorBody{
			Kind:     kind,
			Reason:   failure.ReasonOf(report.Err),
			Message:  report.Err.Error(),
			Guidance: Guidance(report.Err),
		}}
	}
	if report.Result == nil {
		return ReviewPayload{}
	}
	return ReviewPayload{
		Review:      report.Result.Text,
		GeneratedAt: report.Result.GeneratedAt,
		InputLength: report.Result.InputLength,
		Model:       report.Result.Model,
	}
}

// Format returns the report as indented JSON.
func (f *JSONFormatter) Format(report Report) string {
	data, err := json.MarshalIndent(Payload(report), "", "  ")
	if err != nil {
		return `{"error": {"kind": "upstream_failure", "message": "failed to marshal result"}}`
	}
	return string(data)
}
