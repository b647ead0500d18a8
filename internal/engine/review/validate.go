package review

import (
	"strings"
	"unicode/utf8"

	"github.com/irahardianto/codereview/internal/engine/failure"
)

const (
	// MinLength is the minimum trimmed snippet length, in characters.
	MinLength = 10
	// MaxLength is the maximum raw snippet length, in characters.
	MaxLength = 10000
)

// Length returns the snippet length in characters (runes).
func Length(snippet string) int {
	return utf8.RuneCountInString(snippet)
}

// Validate checks a snippet before any outbound call is made.
// It is pure: the same input always yields the same result.
func Validate(snippet string) error {
	trimmed := strings.TrimSpace(snippet)
	if trimmed == "" {
		return failure.New(failure.EmptyInput, "Code cannot be empty")
	}
	if Length(snippet) > MaxLength {
		return failure.Newf(failure.InputTooLong, "Code is too long. Please limit to %s characters.", "10,000")
	}
	if Length(trimmed) < MinLength {
		return failure.New(failure.InputTooShort, "Code snippet is too short for meaningful review.")
	}
	return nil
}
