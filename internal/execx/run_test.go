//go:build !windows

package execx

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunShellCapturesStreams(t *testing.T) {
	res := RunShell(context.Background(), "", nil, "echo out; echo err 1>&2")

	if !res.OK() {
		t.Fatalf("RunShell() = %+v, want success", res)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "out\n")
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "err\n")
	}
}

func TestRunShellExitCode(t *testing.T) {
	res := RunShell(context.Background(), "", nil, "exit 3")

	if res.OK() {
		t.Fatal("RunShell(exit 3).OK() = true, want false")
	}
	if res.Code != 3 {
		t.Errorf("Code = %d, want 3", res.Code)
	}
}

func TestRunShellEnv(t *testing.T) {
	res := RunShell(context.Background(), "", []string{"RAVEN_MODE=debug"}, "echo $RAVEN_MODE")

	if strings.TrimSpace(res.Stdout) != "debug" {
		t.Errorf("Stdout = %q, want the injected RAVEN_MODE value", res.Stdout)
	}
}

func TestRunInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	res := RunIn(context.Background(), dir, "pwd")

	if !res.OK() {
		t.Fatalf("RunIn(pwd) = %+v, want success", res)
	}
	// pwd may print a symlink-resolved variant of the temp dir, so
	// only check the final path element.
	if !strings.Contains(res.Stdout, dir[strings.LastIndex(dir, "/"):]) {
		t.Errorf("Stdout = %q, want path ending in %q", res.Stdout, dir)
	}
}

func TestRunSpawnError(t *testing.T) {
	res := Run(context.Background(), "/nonexistent/raven-tool")

	if res.Err == nil {
		t.Fatal("Run of missing binary: Err = nil, want spawn error")
	}
	if res.Code != 1 {
		t.Errorf("Code = %d, want 1 for spawn failure", res.Code)
	}
}

func TestRunDeadline(t *testing.T) {
	ctx, cancel := WithTimeout(50 * time.Millisecond)
	defer cancel()

	res := RunShell(ctx, "", nil, "sleep 5")

	if res.Code != 124 {
		t.Errorf("Code = %d, want 124 for deadline kill", res.Code)
	}
}

func TestTail(t *testing.T) {
	tests := []struct {
		name   string
		output string
		n      int
		want   string
	}{
		{"empty", "", 5, ""},
		{"shorter than limit", "a\nb\n", 5, "a\nb"},
		{"exactly limit", "a\nb\nc", 3, "a\nb\nc"},
		{"longer than limit", "a\nb\nc\nd\ne\nf\n", 3, "d\ne\nf"},
		{"single line", "only\n", 1, "only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tail(tt.output, tt.n); got != tt.want {
				t.Errorf("Tail(%q, %d) = %q, want %q", tt.output, tt.n, got, tt.want)
			}
		})
	}
}
