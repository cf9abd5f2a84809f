// Package config provides RAVEN CLI configuration management.
//
// This file resolves the CLI's state directory (~/.raven) where the
// process registry, service logs, and the optional config file live.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// StateDir returns the CLI state directory (~/.raven).
//
// The directory is not created here; callers that write into it use
// EnsureStateDirs first.
//
// Returns:
//   - string: Absolute path to the state directory.
func StateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".raven")
}

// LogDir returns the directory holding per-service log files.
func LogDir() string {
	return filepath.Join(StateDir(), "log")
}

// RegistryPath returns the path of the process registry file written by
// start and removed by stop.
func RegistryPath() string {
	return filepath.Join(StateDir(), "registry")
}

// ConfigPath returns the path of the optional override config file.
func ConfigPath() string {
	return filepath.Join(StateDir(), "config.yaml")
}

var (
	// logNameDisallowed matches anything not in [a-z0-9-_].
	logNameDisallowed = regexp.MustCompile(`[^a-z0-9\-_]`)
	// logNameMultiHyphen collapses consecutive hyphens.
	logNameMultiHyphen = regexp.MustCompile(`-{2,}`)
)

// safeLogName converts a service name into a filesystem-safe log file
// stem. Built-in service names pass through unchanged; names from a
// user config may carry spaces or separators that must not reach the
// filesystem.
func safeLogName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = logNameDisallowed.ReplaceAllString(s, "")
	s = logNameMultiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "service"
	}
	return s
}

// ServiceLogPath returns the log file path for a managed service.
//
// Parameters:
//   - name: The service name.
//
// Returns:
//   - string: Absolute path to the service's log file.
func ServiceLogPath(name string) string {
	return filepath.Join(LogDir(), safeLogName(name)+".log")
}

// EnsureStateDirs creates the state and log directories if missing.
//
// Returns:
//   - error: Any error from directory creation.
func EnsureStateDirs() error {
	return os.MkdirAll(LogDir(), 0755)
}
