// Package git reads staged changes so they can be reviewed before commit.
package git

import (
	"context"
)

// FileDiff holds the staged diff of one file.
type FileDiff struct {
	Path    string
	Content string
	// Binary is set when git reports the file as binary; such diffs carry no reviewable code.
	Binary bool
}

// Service abstracts git operations for testability.
type Service interface {
	// StagedDiff returns per-file diffs of staged changes, in git's order.
	StagedDiff(ctx context.Context) ([]FileDiff, error)
}
