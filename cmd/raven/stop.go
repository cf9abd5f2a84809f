package main

import (
	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/config"
	"github.com/ravenrobotics/raven/internal/supervise"
	"github.com/ravenrobotics/raven/internal/ui"
)

// stopCmd ends the running service session.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop all running services",
	Long: `Stop every service recorded in the registry.

Sends a graceful termination signal to each service's process group and
then clears the registry, so a later 'raven start' begins from a clean
slate. Entries whose processes are already gone are reported and
skipped; they never block the rest of the stop pass.

Stopping with nothing running is not an error.`,
	RunE: runStop,
}

// runStop signals every registered service and clears the registry.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Command arguments (unused).
//
// Returns:
//   - error: Error if the registry could not be read or removed.
//     Individual signal failures are reported, not returned.
func runStop(cmd *cobra.Command, args []string) error {
	sup := supervise.New(supervise.NewRegistry(config.RegistryPath()))

	report, err := sup.StopAll()
	if err != nil {
		ui.PrintError("Stop failed: %v", err)
		return err
	}

	if report.Empty() {
		ui.PrintInfo("No running services found")
		return nil
	}

	for _, o := range report.Outcomes {
		if o.Err != nil {
			ui.PrintWarning("%s (pid %d) was already gone", o.Name, o.PID)
			continue
		}
		ui.PrintSuccess("%s stopped (pid %d)", o.Name, o.PID)
	}

	ui.PrintSuccess("Stopped %d of %d service(s)", report.Stopped(), len(report.Outcomes))
	return nil
}
