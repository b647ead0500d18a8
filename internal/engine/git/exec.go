package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/irahardianto/codereview/internal/platform/logger"
)

// ExecService implements Service by running git commands via os/exec.
type ExecService struct {
	// WorkDir is the working directory for git commands.
	// If empty, the current directory is used.
	WorkDir string
}

// NewExecService creates a new ExecService with the given working directory.
func NewExecService(workDir string) *ExecService {
	return &ExecService{WorkDir: workDir}
}

// StagedDiff returns per-file diffs of staged changes. External diff drivers
// and color are disabled so the output is plain unified diff.
func (s *ExecService) StagedDiff(ctx context.Context) ([]FileDiff, error) {
	log := logger.FromContext(ctx)
	log.Debug("reading staged diff", "work_dir", s.WorkDir)

	out, err := s.runGit(ctx, "diff", "--cached", "--no-color", "--no-ext-diff")
	if err != nil {
		return nil, fmt.Errorf("getting staged diff: %w", err)
	}

	diffs := SplitDiffs(out)
	log.Debug("staged diff read", "files", len(diffs))
	return diffs, nil
}

// runGit executes a git command and returns stdout.
func (s *ExecService) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- args are fixed by the application
	cmd.Dir = s.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
