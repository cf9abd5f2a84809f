// Package logtail reads and follows the per-service log files the
// supervisor redirects service output into.
package logtail

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// LastLines returns the trailing n lines of the file at path.
//
// Service logs are truncated on every launch, so whole-file reads stay
// proportional to one session's output.
//
// Parameters:
//   - path: The log file to read.
//   - n: Maximum number of lines to return.
//
// Returns:
//   - []string: Up to n trailing lines, oldest first.
//   - error: Error if the file cannot be read.
func LastLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// Follow streams lines appended to path into out until ctx is done.
//
// Only new output is streamed; callers wanting history print LastLines
// first. Truncation of the file (a service relaunch) resets the read
// offset so the fresh session's output appears from its beginning.
//
// Parameters:
//   - ctx: Cancels the follow; cancellation is a clean nil return.
//   - path: The log file to follow.
//   - out: Destination for appended bytes.
//
// Returns:
//   - error: Error if the file or watcher cannot be set up, or a read
//     fails mid-stream.
func Follow(ctx context.Context, path string, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create log watcher: %w", err)
	}
	defer watcher.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek log: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch log: %w", err)
	}
	log.Debug("Following log", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			offset, err = drain(f, offset, out)
			if err != nil {
				return fmt.Errorf("failed to read log: %w", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Log watcher error", "error", werr)
		}
	}
}

// drain copies everything between offset and the current end of f to
// out, returning the new offset. A shrunken file restarts from zero.
func drain(f *os.File, offset int64, out io.Writer) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return offset, err
	}
	if info.Size() < offset {
		offset = 0
	}
	if info.Size() == offset {
		return offset, nil
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	n, err := io.Copy(out, f)
	return offset + n, err
}
