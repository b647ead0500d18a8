// Package formatter renders review outcomes for the terminal and for machines.
package formatter

import (
	"github.com/irahardianto/codereview/internal/engine/review"
)

// Report is the outcome of one review: exactly one of Result and Err is set.
type Report struct {
	Result *review.Result
	Err    error
}

// Formatter formats a Report into a human-readable or machine-readable string.
type Formatter interface {
	Format(report Report) string
}
