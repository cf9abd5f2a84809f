package supervise

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Entry is one registry record: a service name bound to the process ID
// of its detached process group leader.
type Entry struct {
	Name string `json:"name"`
	PID  int    `json:"pid"`
}

// Registry persists name:pid records to a file so that a later `raven
// stop` can signal what an earlier `raven start` launched. The file is
// fully rewritten on every start and deleted on stop; it is never
// patched in place.
type Registry struct {
	path string
}

// NewRegistry returns a registry backed by the given file path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the registry file location.
func (r *Registry) Path() string {
	return r.path
}

// Read loads all registry entries.
//
// A missing file is an empty registry, not an error. Lines that do not
// parse as name:pid are skipped with a debug log; a stale or hand-edited
// registry must never block a stop pass.
//
// Returns:
//   - []Entry: Parsed entries in file order, nil when the file is absent.
//   - error: Error if the file exists but cannot be read.
func (r *Registry) Read() ([]Entry, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, pidText, ok := strings.Cut(line, ":")
		if !ok {
			log.Debug("Skipping malformed registry line", "line", line)
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(pidText))
		if err != nil || name == "" {
			log.Debug("Skipping malformed registry line", "line", line)
			continue
		}
		entries = append(entries, Entry{Name: name, PID: pid})
	}
	return entries, nil
}

// Write replaces the registry with the given entries.
//
// Parameters:
//   - entries: Records to persist, one name:pid line each.
//
// Returns:
//   - error: Error if the file cannot be written.
func (r *Registry) Write(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s:%d\n", e.Name, e.PID)
	}
	if err := os.WriteFile(r.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Remove deletes the registry file. Removing an absent registry is a
// no-op.
func (r *Registry) Remove() error {
	err := os.Remove(r.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove registry: %w", err)
	}
	return nil
}
