package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupGitRepo creates a temporary git repository with a test identity.
func setupGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	// Init repo
	run(t, dir, "git", "init")
	run(t, dir, "git", "config", "user.email", "test@test.com")
	run(t, dir, "git", "config", "user.name", "Test")

	return dir
}

// run executes a command in the given directory and fails the test on error.
func run(t *testing.T, dir, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %s failed: %v\n%s", name, strings.Join(args, " "), err, out)
	}
}

func TestExecService_StagedDiff(t *testing.T) {
	dir := setupGitRepo(t)

	// Create and stage a file
	filePath := filepath.Join(dir, "hello.go")
	if err := os.WriteFile(filePath, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "add", "hello.go")

	svc := NewExecService(dir)
	diffs, err := svc.StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d", len(diffs))
	}
	if diffs[0].Path != "hello.go" {
		t.Errorf("expected path 'hello.go', got %q", diffs[0].Path)
	}
	if !strings.Contains(diffs[0].Content, "package main") {
		t.Errorf("expected diff to contain 'package main', got:\n%s", diffs[0].Content)
	}
}

func TestExecService_StagedDiff_MultipleStagedFiles(t *testing.T) {
	dir := setupGitRepo(t)

	// Create and stage two files
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "add", "a.go", "b.go")

	svc := NewExecService(dir)
	diffs, err := svc.StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs, got %d", len(diffs))
	}

	paths := map[string]bool{}
	for _, d := range diffs {
		paths[d.Path] = true
	}
	if !paths["a.go"] || !paths["b.go"] {
		t.Errorf("expected diffs for a.go and b.go, got paths: %v", paths)
	}
}

func TestExecService_StagedDiff_EmptyStaging(t *testing.T) {
	dir := setupGitRepo(t)

	svc := NewExecService(dir)
	diffs, err := svc.StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(diffs) != 0 {
		t.Errorf("expected 0 diffs for empty staging, got %d", len(diffs))
	}
}

func TestExecService_StagedDiff_Binary(t *testing.T) {
	dir := setupGitRepo(t)

	if err := os.WriteFile(filepath.Join(dir, "logo.bin"), []byte{0x00, 0x01, 0x02, 0x00, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "add", "logo.bin", "main.go")

	diffs, err := NewExecService(dir).StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs, got %d", len(diffs))
	}

	for _, d := range diffs {
		switch d.Path {
		case "logo.bin":
			if !d.Binary {
				t.Error("expected logo.bin to be marked binary")
			}
		case "main.go":
			if d.Binary {
				t.Error("expected main.go to be text")
			}
		default:
			t.Errorf("unexpected path %q", d.Path)
		}
	}
}

func TestExecService_StagedDiff_UnstagedIgnored(t *testing.T) {
	dir := setupGitRepo(t)

	if err := os.WriteFile(filepath.Join(dir, "draft.go"), []byte("package draft\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	diffs, err := NewExecService(dir).StagedDiff(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diffs) != 0 {
		t.Errorf("expected untracked files to be ignored, got %d diffs", len(diffs))
	}
}

func TestExecService_StagedDiff_InvalidWorkDir(t *testing.T) {
	svc := NewExecService("/nonexistent/path/that/does/not/exist")

	_, err := svc.StagedDiff(context.Background())
	if err == nil {
		t.Fatal("expected error for invalid work dir, got nil")
	}
}

func TestExecService_StagedDiff_NotARepo(t *testing.T) {
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())
	_, err := NewExecService(t.TempDir()).StagedDiff(context.Background())
	if err == nil {
		t.Fatal("expected error outside a repository, got nil")
	}
	if !strings.Contains(err.Error(), "getting staged diff") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
