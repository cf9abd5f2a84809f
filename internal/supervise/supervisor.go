// Package supervise owns the lifecycle of long-running rover services:
// launching them detached from the controlling terminal, recording their
// PIDs in a durable registry, and signaling them to stop from a later
// CLI invocation.
//
// Launch is fire-and-forget. A launched service is not waited on; the
// supervisor records its identity and returns, and the service keeps
// running after the CLI exits. The registry file is the only state
// shared between the start and stop invocations.
package supervise

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// shellPath is the interpreter service commands run under.
const shellPath = "/bin/sh"

// LaunchSpec describes one service to launch.
type LaunchSpec struct {
	// Name is the logical service name, unique per running session.
	Name string

	// Dir is the working directory for the process.
	Dir string

	// Command is a shell command line, run via the shell so service
	// definitions can use arguments and environment expansion.
	Command string

	// Env holds KEY=VALUE pairs layered on top of the inherited
	// environment.
	Env []string

	// LogPath is the file stdout and stderr are redirected to. It is
	// truncated on every launch so each session starts a fresh log.
	LogPath string
}

// LaunchResult reports one launch attempt.
type LaunchResult struct {
	Name string
	PID  int
	Err  error
}

// StopOutcome reports the signal attempt for one registry entry.
type StopOutcome struct {
	Name string
	PID  int
	Err  error
}

// StopReport aggregates the per-entry outcomes of a stop pass.
type StopReport struct {
	Outcomes []StopOutcome
}

// Stopped counts entries that were signaled without error.
func (r StopReport) Stopped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Empty reports whether the registry had no entries to stop.
func (r StopReport) Empty() bool {
	return len(r.Outcomes) == 0
}

// Supervisor launches and stops managed service processes.
type Supervisor struct {
	registry *Registry
}

// New returns a supervisor backed by the given registry.
func New(registry *Registry) *Supervisor {
	return &Supervisor{registry: registry}
}

// StartAll launches every spec in order and rewrites the registry with
// the successful launches.
//
// Launches are independent: a spec that fails to spawn is reported in
// its LaunchResult and does not block the remaining specs. The registry
// is fully rewritten even when every launch failed, so a later stop
// never acts on entries from a previous session.
//
// Parameters:
//   - specs: Services to launch, in order.
//
// Returns:
//   - []LaunchResult: One result per spec, in spec order.
//   - error: Error if the registry could not be written.
func (s *Supervisor) StartAll(specs []LaunchSpec) ([]LaunchResult, error) {
	results := make([]LaunchResult, 0, len(specs))
	entries := make([]Entry, 0, len(specs))

	for _, spec := range specs {
		pid, err := launch(spec)
		results = append(results, LaunchResult{Name: spec.Name, PID: pid, Err: err})
		if err != nil {
			log.Warn("Failed to start service", "service", spec.Name, "error", err)
			continue
		}
		log.Debug("Service started", "service", spec.Name, "pid", pid)
		entries = append(entries, Entry{Name: spec.Name, PID: pid})
	}

	if err := s.registry.Write(entries); err != nil {
		return results, err
	}
	return results, nil
}

// StopAll signals every registered process group and clears the registry.
//
// Signal failures (process already gone, delivery refused) are recorded
// per entry and never abort the pass. The registry is removed
// unconditionally afterwards so a stale or partially-failed registry
// cannot block a future start.
//
// Returns:
//   - StopReport: One outcome per registry entry; empty when the
//     registry was absent or empty.
//   - error: Error if the registry could not be read or removed.
func (s *Supervisor) StopAll() (StopReport, error) {
	entries, err := s.registry.Read()
	if err != nil {
		return StopReport{}, err
	}

	var report StopReport
	for _, e := range entries {
		err := signalStop(e.PID)
		if err != nil {
			log.Debug("Signal not delivered", "service", e.Name, "pid", e.PID, "error", err)
		} else {
			log.Debug("Sent termination signal", "service", e.Name, "pid", e.PID)
		}
		report.Outcomes = append(report.Outcomes, StopOutcome{Name: e.Name, PID: e.PID, Err: err})
	}

	if err := s.registry.Remove(); err != nil {
		return report, err
	}
	return report, nil
}

// Running returns the registry entries whose processes are still alive.
//
// Used by start to refuse a second session while one is running, and by
// status to separate live services from stale records.
func (s *Supervisor) Running() ([]Entry, error) {
	entries, err := s.registry.Read()
	if err != nil {
		return nil, err
	}
	var running []Entry
	for _, e := range entries {
		if alive(e.PID) {
			running = append(running, e)
		}
	}
	return running, nil
}

// Alive reports whether pid refers to a running process.
func Alive(pid int) bool {
	return alive(pid)
}

// Uptime returns the elapsed run time of pid in ps etime format, or ""
// when the process cannot be inspected.
func Uptime(pid int) string {
	return processUptime(pid)
}

// launch spawns one detached service process and returns its PID.
//
// The log sink is truncated before the spawn, so even a service that
// dies instantly leaves a fresh (possibly empty) log rather than the
// previous session's output.
func launch(spec LaunchSpec) (int, error) {
	logFile, err := os.OpenFile(spec.LogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open log sink: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(shellPath, "-c", spec.Command)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to spawn %s: %w", spec.Name, err)
	}

	pid := cmd.Process.Pid
	// Never waited on; release the handle so the child runs free.
	_ = cmd.Process.Release()
	return pid, nil
}
