//go:build !windows

package fleet

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ravenrobotics/raven/internal/workspace"
)

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

// initCheckout builds a committed git repo with no remote configured.
func initCheckout(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	gitIn(t, dir, "init", "-q")
	gitIn(t, dir, "config", "user.email", "fleet@test.local")
	gitIn(t, dir, "config", "user.name", "Fleet Test")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("raven\n"), 0644); err != nil {
		t.Fatalf("writing README: %v", err)
	}
	gitIn(t, dir, "add", "-A")
	gitIn(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func TestPullPreconditionRequiresCheckout(t *testing.T) {
	plain := workspace.Target{Name: "raven-docs", Path: t.TempDir()}
	ok, reason := (PullOp{}).Precondition(plain)
	if ok {
		t.Errorf("Precondition() = true for a plain directory")
	}
	if reason != "not a git checkout" {
		t.Errorf("reason = %q", reason)
	}
}

func TestPushCleanWorktreeIsNoChanges(t *testing.T) {
	dir := initCheckout(t)
	target := workspace.Target{Name: "raven-brain", Path: dir}

	op := PushOp{Message: "Update from RAVEN CLI"}
	if ok, _ := op.Precondition(target); !ok {
		t.Fatalf("Precondition() = false for a git checkout")
	}

	before := strings.TrimSpace(gitIn(t, dir, "rev-list", "--count", "HEAD"))
	outcome := op.Execute(context.Background(), target)
	after := strings.TrimSpace(gitIn(t, dir, "rev-list", "--count", "HEAD"))

	if outcome.Status != StatusNoChanges {
		t.Fatalf("Execute() status = %q, want %q", outcome.Status, StatusNoChanges)
	}
	if before != after {
		t.Errorf("commit count changed from %s to %s on a clean worktree", before, after)
	}
}

func TestPushFailsAtFirstBrokenStep(t *testing.T) {
	dir := initCheckout(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("pending\n"), 0644); err != nil {
		t.Fatalf("writing change: %v", err)
	}

	// No remote is configured, so stage and commit succeed and the
	// push step fails.
	op := PushOp{Message: "Update from RAVEN CLI"}
	outcome := op.Execute(context.Background(), workspace.Target{Name: "raven-brain", Path: dir})

	if outcome.Status != StatusFailed {
		t.Fatalf("Execute() status = %q, want %q", outcome.Status, StatusFailed)
	}
	if !strings.HasPrefix(outcome.Detail, "push:") {
		t.Errorf("Detail = %q, want push step prefix", outcome.Detail)
	}

	// The local commit was still created before push failed.
	count := strings.TrimSpace(gitIn(t, dir, "rev-list", "--count", "HEAD"))
	if count != "2" {
		t.Errorf("commit count = %s, want 2", count)
	}
}
