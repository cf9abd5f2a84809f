package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/config"
	"github.com/ravenrobotics/raven/internal/supervise"
	"github.com/ravenrobotics/raven/internal/ui"
)

// startCmd launches the managed services for a drive mode.
var startCmd = &cobra.Command{
	Use:   "start [mode]",
	Short: "Start the rover's managed services",
	Long: `Start the RAVEN stack's managed services for a drive mode.

Modes select which services launch:

  autonomous   brain + embedded (self-driving, default)
  manual       embedded + dashboard (operator drives)
  debug        every service, with the simulation flag set

Each service runs detached with its output redirected to
~/.raven/log/<name>.log (truncated per launch). The session is recorded
in the registry so a later 'raven stop' can end it.

EXAMPLES:
  raven start              # Start autonomous mode
  raven start manual       # Drive through the dashboard
  raven start debug        # Everything, in simulation`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

// runStart launches the mode's services and records the session.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Optional mode name (defaults to the configured mode).
//
// Returns:
//   - error: Any error during execution. Per-service launch failures
//     are reported but do not produce an error.
func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode := cfg.StartMode()
	if len(args) > 0 {
		mode = args[0]
	}
	if !config.ValidMode(mode) {
		ui.PrintError("Unknown mode '%s'. Valid modes: %s", mode, strings.Join(config.Modes, ", "))
		return fmt.Errorf("unknown mode: %s", mode)
	}

	if err := config.EnsureStateDirs(); err != nil {
		ui.PrintError("Failed to prepare state directory: %v", err)
		return err
	}

	sup := supervise.New(supervise.NewRegistry(config.RegistryPath()))

	// Refuse a second session while one is live; a stale registry with
	// no surviving processes is simply overwritten.
	running, err := sup.Running()
	if err != nil {
		ui.PrintError("Failed to read registry: %v", err)
		return err
	}
	if len(running) > 0 {
		ui.PrintError("Services already running (%s). Run 'raven stop' first.", entrySummary(running))
		return fmt.Errorf("services already running")
	}

	locator := newLocator(cfg)
	services := cfg.ServicesFor(mode)

	ui.PrintInfo("Starting RAVEN stack in %s mode (%d services)", mode, len(services))

	specs := make([]supervise.LaunchSpec, 0, len(services))
	for _, svc := range services {
		target, found := locator.Resolve(svc.Target)
		if !found {
			ui.PrintWarning("%s: repository %s is not checked out, skipping", svc.Name, svc.Target)
			continue
		}
		specs = append(specs, supervise.LaunchSpec{
			Name:    svc.Name,
			Dir:     target.Path,
			Command: svc.Command,
			Env:     config.ModeEnv(mode),
			LogPath: config.ServiceLogPath(svc.Name),
		})
	}

	results, err := sup.StartAll(specs)
	if err != nil {
		ui.PrintError("Failed to write registry: %v", err)
		return err
	}

	started := 0
	for _, res := range results {
		if res.Err != nil {
			ui.PrintError("%s failed to start: %v", res.Name, res.Err)
			continue
		}
		started++
		ui.PrintSuccess("%s started (pid %d)", res.Name, res.PID)
	}

	fmt.Println()
	if started == 0 {
		ui.PrintWarning("No services started")
	} else {
		ui.PrintSuccess("RAVEN is up: %d/%d services started", started, len(specs))
	}
	ui.PrintNextSteps([]ui.NextStep{
		{Label: "Watch service health:", Command: "raven status --watch"},
		{Label: "Tail a service log:", Command: "raven logs brain --follow"},
		{Label: "Stop the stack:", Command: "raven stop"},
	})
	return nil
}

// entrySummary renders registry entries as "name pid N, name pid N".
func entrySummary(entries []supervise.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s pid %d", e.Name, e.PID))
	}
	return strings.Join(parts, ", ")
}
