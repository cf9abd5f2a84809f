package logtail

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLastLines(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		n        int
		want     []string
	}{
		{
			name:     "fewer lines than requested",
			contents: "one\ntwo\n",
			n:        10,
			want:     []string{"one", "two"},
		},
		{
			name:     "exactly the tail",
			contents: "one\ntwo\nthree\nfour\n",
			n:        2,
			want:     []string{"three", "four"},
		},
		{
			name:     "no trailing newline",
			contents: "one\ntwo",
			n:        5,
			want:     []string{"one", "two"},
		},
		{
			name:     "empty file",
			contents: "",
			n:        5,
			want:     nil,
		},
		{
			name:     "zero requested",
			contents: "one\n",
			n:        0,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "brain.log")
			if err := os.WriteFile(path, []byte(tt.contents), 0644); err != nil {
				t.Fatalf("writing log: %v", err)
			}

			got, err := LastLines(path, tt.n)
			if err != nil {
				t.Fatalf("LastLines() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("LastLines() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLastLinesMissingFile(t *testing.T) {
	if _, err := LastLines(filepath.Join(t.TempDir(), "absent.log"), 5); err == nil {
		t.Errorf("LastLines() error = nil for a missing file")
	}
}

// lockedBuffer is a goroutine-safe bytes.Buffer for follow tests.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// appendUntilSeen appends marker to path until it shows up in buf,
// tolerating the race between the watcher arming and the first write.
func appendUntilSeen(t *testing.T, path, marker string, buf *lockedBuffer) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			t.Fatalf("opening log for append: %v", err)
		}
		if _, err := f.WriteString(marker + "\n"); err != nil {
			t.Fatalf("appending to log: %v", err)
		}
		f.Close()

		time.Sleep(50 * time.Millisecond)
		if strings.Contains(buf.String(), marker) {
			return
		}
	}
	t.Fatalf("%q never appeared in followed output", marker)
}

func TestFollowStreamsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.log")
	if err := os.WriteFile(path, []byte("history\n"), 0644); err != nil {
		t.Fatalf("seeding log: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf lockedBuffer
	done := make(chan error, 1)
	go func() { done <- Follow(ctx, path, &buf) }()

	appendUntilSeen(t, path, "telemetry online", &buf)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	// Pre-existing contents are not replayed.
	if strings.Contains(buf.String(), "history") {
		t.Errorf("Follow() replayed pre-existing log contents")
	}
}

func TestFollowHandlesTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.log")
	if err := os.WriteFile(path, []byte("old session\n"), 0644); err != nil {
		t.Fatalf("seeding log: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf lockedBuffer
	done := make(chan error, 1)
	go func() { done <- Follow(ctx, path, &buf) }()

	appendUntilSeen(t, path, "first", &buf)

	// A relaunch truncates the file in place.
	if err := os.Truncate(path, 0); err != nil {
		t.Fatalf("truncating log: %v", err)
	}
	appendUntilSeen(t, path, "fresh session", &buf)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
}

func TestFollowMissingFile(t *testing.T) {
	err := Follow(context.Background(), filepath.Join(t.TempDir(), "absent.log"), &bytes.Buffer{})
	if err == nil {
		t.Errorf("Follow() error = nil for a missing file")
	}
}
