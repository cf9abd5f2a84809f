// Package vcs provides the git subprocess layer for fleet operations.
//
// Commands run with per-invocation timeouts and captured output so a
// hung remote cannot stall a fleet run. Push retries transient
// failures with backoff; everything else is single-shot because its
// failures (diverged history, dirty worktree) do not heal on retry.
package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/codeGROOVE-dev/retry"

	"github.com/ravenrobotics/raven/internal/execx"
)

const (
	// localTimeout bounds index-only commands (status, add, commit).
	localTimeout = 30 * time.Second

	// networkTimeout bounds commands that talk to the remote.
	networkTimeout = 2 * time.Minute

	// Retry configuration for push.
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// IsRepo reports whether dir is a git checkout.
//
// Checks for the .git entry directly; it can be a directory (normal
// clone) or a file (worktree), both count.
//
// Parameters:
//   - dir: The directory to check.
//
// Returns:
//   - bool: True if dir contains a .git entry.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Status returns the porcelain status of a checkout.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - dir: The checkout directory.
//
// Returns:
//   - string: Raw `git status --porcelain` output.
//   - error: Error if the command failed.
func Status(ctx context.Context, dir string) (string, error) {
	res := run(ctx, dir, localTimeout, "status", "--porcelain")
	if !res.OK() {
		return "", statusErr("status", res)
	}
	return res.Stdout, nil
}

// HasChanges reports whether a checkout has uncommitted changes.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - dir: The checkout directory.
//
// Returns:
//   - bool: True if the worktree or index differ from HEAD.
//   - error: Error if the status command failed.
func HasChanges(ctx context.Context, dir string) (bool, error) {
	status, err := Status(ctx, dir)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(status) != "", nil
}

// Pull fast-forwards a checkout from its remote.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - dir: The checkout directory.
//
// Returns:
//   - execx.Result: Captured output and exit state.
func Pull(ctx context.Context, dir string) execx.Result {
	return run(ctx, dir, networkTimeout, "pull", "--ff-only")
}

// Add stages every change in a checkout.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - dir: The checkout directory.
//
// Returns:
//   - execx.Result: Captured output and exit state.
func Add(ctx context.Context, dir string) execx.Result {
	return run(ctx, dir, localTimeout, "add", "-A")
}

// Commit records staged changes.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - dir: The checkout directory.
//   - message: The commit message.
//
// Returns:
//   - execx.Result: Captured output and exit state.
func Commit(ctx context.Context, dir, message string) execx.Result {
	return run(ctx, dir, localTimeout, "commit", "-m", message)
}

// Push publishes commits to the remote, retrying transient failures
// with backoff.
//
// Parameters:
//   - ctx: Context for cancellation.
//   - dir: The checkout directory.
//
// Returns:
//   - execx.Result: The final attempt's output and exit state.
func Push(ctx context.Context, dir string) execx.Result {
	var res execx.Result
	err := retry.Do(func() error {
		res = run(ctx, dir, networkTimeout, "push")
		if !res.OK() {
			return statusErr("push", res)
		}
		return nil
	}, retry.Attempts(maxRetries), retry.Delay(initialBackoff), retry.MaxDelay(maxBackoff))
	if err != nil {
		log.Debug("Push did not succeed after retries", "dir", dir, "error", err)
	}
	return res
}

// run executes one git command in a checkout with a bounded timeout.
func run(ctx context.Context, dir string, timeout time.Duration, args ...string) execx.Result {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return execx.RunIn(tctx, dir, "git", args...)
}

// statusErr converts a failed git result into an error carrying the
// stderr line git printed, which is the part worth surfacing.
func statusErr(op string, res execx.Result) error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(res.Stdout)
	}
	if msg == "" {
		return fmt.Errorf("git %s failed with exit code %d", op, res.Code)
	}
	return fmt.Errorf("git %s failed: %s", op, msg)
}
