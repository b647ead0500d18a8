// Package failure defines the closed set of outcomes a review can fail with.
//
// Every error that crosses the boundary between the engine and a shell (terminal
// chat, HTTP, one-shot CLI) is a *Error carrying one Kind. Shells switch on the
// Kind to pick user-facing guidance; the Detail and wrapped error are kept for
// logging and display.
package failure

import (
	"errors"
	"fmt"
)

// Kind tags a failure.
type Kind string

const (
	MissingCredential       Kind = "missing_credential"
	InvalidCredentialFormat Kind = "invalid_credential_format"
	ConnectivityFailure     Kind = "connectivity_failure"
	EmptyInput              Kind = "empty_input"
	InputTooShort           Kind = "input_too_short"
	InputTooLong            Kind = "input_too_long"
	ModelUnavailable        Kind = "model_unavailable"
	EmptyModelResponse      Kind = "empty_model_response"
	UpstreamFailure         Kind = "upstream_failure"
)

// Kinds lists every Kind in declaration order.
var Kinds = []Kind{
	MissingCredential,
	InvalidCredentialFormat,
	ConnectivityFailure,
	EmptyInput,
	InputTooShort,
	InputTooLong,
	ModelUnavailable,
	EmptyModelResponse,
	UpstreamFailure,
}

// Reason narrows down a provider-side failure.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonCredentialRejected Reason = "credential_rejected"
	ReasonQuotaExhausted     Reason = "quota_exhausted"
	ReasonTimeout            Reason = "timeout"
	ReasonModelNotFound      Reason = "model_not_found"
)

// Error is a tagged failure.
type Error struct {
	Kind   Kind
	Detail string
	Reason Reason
	Err    error
}

// New creates an Error with a detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf creates an Error with a formatted detail message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind, keeping err's message as the detail.
func Wrap(kind Kind, reason Reason, err error) *Error {
	e := &Error{Kind: kind, Reason: reason, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// ReasonOf returns the Reason of the first *Error in err's chain.
func ReasonOf(err error) Reason {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ReasonNone
}

// IsValidation reports whether the kind is produced by input validation.
func (k Kind) IsValidation() bool {
	switch k {
	case EmptyInput, InputTooShort, InputTooLong:
		return true
	}
	return false
}

// IsCredential reports whether the kind is produced while setting up the gateway.
func (k Kind) IsCredential() bool {
	switch k {
	case MissingCredential, InvalidCredentialFormat, ConnectivityFailure:
		return true
	}
	return false
}
