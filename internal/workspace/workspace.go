// Package workspace resolves fleet repositories on disk.
//
// The RAVEN stack is a set of sibling repositories checked out next to
// the CLI's own repository:
//
//	workspace/
//	├── raven-cli/          (this binary installs to raven-cli/bin)
//	├── raven-brain/
//	├── raven-embedded/
//	├── raven-dashboard/
//	└── raven-docs/
//
// Resolution is relative to the installed binary so the CLI works from
// any working directory. RAVEN_WORKSPACE (or workspace.root in the
// config file) pins the root explicitly for relocated installs.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// binaryDepth is how many directories sit between the binary and the
// workspace root: <root>/raven-cli/bin/raven.
const binaryDepth = 2

// Target is a fleet repository resolved to a directory on disk.
type Target struct {
	// Name is the repository name (e.g. "raven-brain").
	Name string

	// Path is the absolute directory path.
	Path string
}

// Locator resolves fleet repositories against the workspace root.
// Lookups hit the filesystem every time; nothing is cached, so a
// checkout appearing mid-run is picked up by the next call.
type Locator struct {
	// rootOverride pins the workspace root. Empty means derive it from
	// the running binary's location.
	rootOverride string
}

// NewLocator creates a locator.
//
// Parameters:
//   - rootOverride: Explicit workspace root from the config file, or
//     empty to derive the root from the binary location.
//
// Returns:
//   - *Locator: A new locator instance.
func NewLocator(rootOverride string) *Locator {
	return &Locator{rootOverride: rootOverride}
}

// Root returns the workspace root directory.
//
// Priority: RAVEN_WORKSPACE environment variable, then the config
// override, then the directory derived from the installed binary.
//
// Returns:
//   - string: Absolute path of the workspace root.
//   - error: Error if the binary location cannot be determined.
func (l *Locator) Root() (string, error) {
	if env := os.Getenv("RAVEN_WORKSPACE"); env != "" {
		return env, nil
	}
	if l.rootOverride != "" {
		return l.rootOverride, nil
	}

	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	return RootFromBinary(execPath), nil
}

// RootFromBinary derives the workspace root from a binary path by
// walking up past raven-cli/bin.
//
// Parameters:
//   - execPath: Absolute path of the installed raven binary.
//
// Returns:
//   - string: The derived workspace root.
func RootFromBinary(execPath string) string {
	dir := filepath.Dir(execPath)
	for i := 0; i < binaryDepth; i++ {
		dir = filepath.Dir(dir)
	}
	return dir
}

// Resolve locates a fleet repository by name.
//
// A missing checkout is an expected state (trimmed workspaces are
// common on dev machines), so it is reported via the boolean rather
// than an error.
//
// Parameters:
//   - name: The repository name (e.g. "raven-embedded").
//
// Returns:
//   - Target: The resolved repository. Zero value when not found.
//   - bool: True if the directory exists.
func (l *Locator) Resolve(name string) (Target, bool) {
	root, err := l.Root()
	if err != nil {
		log.Debug("Could not determine workspace root", "error", err)
		return Target{}, false
	}

	path := filepath.Join(root, name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		log.Debug("Repository not present in workspace", "name", name, "path", path)
		return Target{}, false
	}

	return Target{Name: name, Path: path}, true
}

// ResolveAll resolves every name in order, keeping only the checkouts
// present on disk.
//
// Parameters:
//   - names: Repository names in fleet order.
//
// Returns:
//   - []Target: The resolved repositories, in input order.
func (l *Locator) ResolveAll(names []string) []Target {
	var out []Target
	for _, name := range names {
		if t, ok := l.Resolve(name); ok {
			out = append(out, t)
		}
	}
	return out
}
