// Package execx runs external commands with captured output.
//
// Every fleet operation, git call, and board-tool invocation goes
// through this package so exit codes and output capture behave the
// same everywhere.
package execx

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Result holds the outcome of one external command.
type Result struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// Code is the process exit code. 124 means the context deadline
	// killed the command.
	Code int

	// Duration is the wall-clock time the command took.
	Duration time.Duration

	// Err is the spawn or wait error, nil on a clean exit.
	Err error
}

// OK reports whether the command ran and exited zero.
func (r Result) OK() bool {
	return r.Err == nil && r.Code == 0
}

// Run executes a command in the current directory with captured output.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines.
//   - name: The binary to run.
//   - args: Command arguments.
//
// Returns:
//   - Result: Captured output, exit code, and error.
func Run(ctx context.Context, name string, args ...string) Result {
	return RunIn(ctx, "", name, args...)
}

// RunIn executes a command in a working directory with captured output.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines.
//   - dir: Working directory. Empty means the current directory.
//   - name: The binary to run.
//   - args: Command arguments.
//
// Returns:
//   - Result: Captured output, exit code, and error.
func RunIn(ctx context.Context, dir, name string, args ...string) Result {
	log.Debug("Executing command", "cmd", name+" "+strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return capture(ctx, cmd)
}

// RunShell executes a shell command line with captured output.
//
// The command runs through /bin/sh -c, matching how managed services
// are launched, so config command lines can use shell syntax.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines.
//   - dir: Working directory. Empty means the current directory.
//   - env: Extra KEY=value pairs appended to the inherited environment.
//   - command: The shell command line.
//
// Returns:
//   - Result: Captured output, exit code, and error.
func RunShell(ctx context.Context, dir string, env []string, command string) Result {
	log.Debug("Executing shell command", "cmd", command, "dir", dir)

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return capture(ctx, cmd)
}

// WithTimeout returns a context that cancels after d.
func WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// capture runs the prepared command and classifies the exit.
func capture(ctx context.Context, cmd *exec.Cmd) Result {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	code := 0
	if err != nil {
		// A deadline kill also surfaces as an ExitError (signal exit),
		// so the context is checked first.
		if ctx.Err() == context.DeadlineExceeded {
			code = 124
		} else if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else {
			code = 1
		}
	}

	return Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Code:     code,
		Duration: elapsed,
		Err:      err,
	}
}

// Tail returns the last n lines of captured output, trimmed of the
// trailing newline. Failure reports include only this slice of stdout
// so one noisy test run cannot flood the console.
//
// Parameters:
//   - output: The captured output.
//   - n: Maximum number of lines to keep.
//
// Returns:
//   - string: The final n lines, or the whole output when shorter.
func Tail(output string, n int) string {
	trimmed := strings.TrimRight(output, "\n")
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) <= n {
		return trimmed
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
