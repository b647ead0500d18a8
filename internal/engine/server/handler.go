// Package server exposes the review pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/irahardianto/codereview/internal/engine/failure"
	"github.com/irahardianto/codereview/internal/engine/formatter"
	"github.com/irahardianto/codereview/internal/engine/review"
	"github.com/irahardianto/codereview/internal/platform/logger"
)

// MaxBodyBytes caps the POST /review request body. It admits a snippet of
// review.MaxLength characters even when every character is an astral rune
// escaped as a \uXXXX\uXXXX surrogate pair (12 bytes), plus the envelope.
const MaxBodyBytes = 128 * 1024

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Reviewer is the pipeline the handler serves.
type Reviewer interface {
	Review(ctx context.Context, snippet string) (*review.Result, error)
	Model() string
}

// ReviewRequest is the POST /review body.
type ReviewRequest struct {
	Code string `json:"code"`
}

// HealthResponse is the GET /healthz body.
type HealthResponse struct {
	Status  string       `json:"status"`
	Model   string       `json:"model,omitempty"`
	Kind    failure.Kind `json:"kind,omitempty"`
	Message string       `json:"message,omitempty"`
}

type handler struct {
	reviewer Reviewer
	ready    error
}

// NewHandler returns the HTTP API. ready is the gateway initialization
// outcome; a non-nil value makes /healthz report unavailable.
func NewHandler(reviewer Reviewer, ready error) http.Handler {
	h := &handler{reviewer: reviewer, ready: ready}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("POST /review", h.handleReview)
	return withRequestID(mux)
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		kind := failure.KindOf(h.ready)
		if kind == "" {
			kind = failure.ModelUnavailable
		}
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Kind:    kind,
			Message: h.ready.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready", Model: h.reviewer.Model()})
}

func (h *handler) handleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			tooLong := failure.New(failure.InputTooLong,
				fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit))
			log.Debug("review rejected", "error", tooLong, "status", http.StatusRequestEntityTooLarge)
			writeJSON(w, http.StatusRequestEntityTooLarge, formatter.Payload(formatter.Report{Err: tooLong}))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.reviewer.Review(r.Context(), req.Code)
	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("review failed", "error", err, "status", status)
		} else {
			log.Debug("review rejected", "error", err, "status", status)
		}
		writeJSON(w, status, formatter.Payload(formatter.Report{Err: err}))
		return
	}

	writeJSON(w, http.StatusOK, formatter.Payload(formatter.Report{Result: res}))
}

// StatusFor maps a review failure to its HTTP status code.
func StatusFor(err error) int {
	switch failure.KindOf(err) {
	case failure.EmptyInput:
		return http.StatusBadRequest
	case failure.InputTooShort, failure.InputTooLong:
		return http.StatusUnprocessableEntity
	case failure.ModelUnavailable, failure.MissingCredential,
		failure.InvalidCredentialFormat, failure.ConnectivityFailure:
		return http.StatusServiceUnavailable
	case failure.UpstreamFailure, failure.EmptyModelResponse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// withRequestID tags every request with an id, echoed in the response and
// attached to the request-scoped logger.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logger.With(r.Context(), "request_id", id)
		logger.FromContext(ctx).Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, formatter.ErrorPayload{Error: formatter.ErrorBody{Message: msg}})
}
