package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/config"
	"github.com/ravenrobotics/raven/internal/supervise"
	"github.com/ravenrobotics/raven/internal/tui"
	"github.com/ravenrobotics/raven/internal/ui"
)

// statusWatch holds the --watch flag.
var statusWatch bool

// statusCmd reports the health of the registered services.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service health from the registry",
	Long: `Show each registered service with its PID, liveness, and uptime.

Reads the registry written by 'raven start' and probes every recorded
process. A service that died since launch shows as dead until the next
'raven stop' clears the registry.

EXAMPLES:
  raven status             # One-shot table
  raven status --watch     # Live view, refreshes every second
  raven status --json      # Machine-readable output`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Refresh the view every second")
}

// serviceStatus is one registry entry's probed state.
type serviceStatus struct {
	Name    string `json:"name"`
	PID     int    `json:"pid"`
	Running bool   `json:"running"`
	Uptime  string `json:"uptime,omitempty"`
}

// runStatus renders the one-shot or live status view.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Command arguments (unused).
//
// Returns:
//   - error: Any error during execution.
func runStatus(cmd *cobra.Command, args []string) error {
	registry := supervise.NewRegistry(config.RegistryPath())
	jsonOutput := jsonFlag(cmd)

	if statusWatch && tui.ShouldRunTUI(jsonOutput, ui.IsQuiet()) {
		return tui.RunWatch(version, registry)
	}

	entries, err := registry.Read()
	if err != nil {
		ui.PrintError("Failed to read registry: %v", err)
		return err
	}

	statuses := make([]serviceStatus, 0, len(entries))
	for _, e := range entries {
		statuses = append(statuses, serviceStatus{
			Name:    e.Name,
			PID:     e.PID,
			Running: supervise.Alive(e.PID),
			Uptime:  supervise.Uptime(e.PID),
		})
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(statuses, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(statuses) == 0 {
		ui.PrintInfo("No services registered")
		ui.PrintNextSteps([]ui.NextStep{
			{Label: "Start the stack:", Command: "raven start"},
		})
		return nil
	}

	fmt.Println()
	table := ui.NewTable("SERVICE", "PID", "STATE", "UPTIME")
	for _, s := range statuses {
		state := ui.StatusPassedStyle.Render("● running")
		uptime := s.Uptime
		if !s.Running {
			state = ui.StatusFailedStyle.Render("○ dead")
			uptime = "-"
		}
		if uptime == "" {
			uptime = "-"
		}
		table.AddRow(s.Name, strconv.Itoa(s.PID), state, uptime)
	}
	table.Render()
	fmt.Println()
	return nil
}
