package git

import (
	"context"
)

// MockService is a test double for git.Service.
type MockService struct {
	Diffs   []FileDiff
	DiffErr error
	Calls   int
}

// StagedDiff returns the configured diffs.
func (m *MockService) StagedDiff(_ context.Context) ([]FileDiff, error) {
	m.Calls++
	return m.Diffs, m.DiffErr
}
