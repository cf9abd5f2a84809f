package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/fleet"
	"github.com/ravenrobotics/raven/internal/ui"
)

// pullCmd fast-forwards every fleet repository.
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the latest changes across the fleet repositories",
	Long: `Run 'git pull --ff-only' in every known repository, in order.

Repositories that are not checked out, or are plain directories without
git history, are skipped. A pull failure in one repository (diverged
history, unreachable remote) is reported and the run continues with the
next one.

EXAMPLES:
  raven pull               # Update the whole workspace
  raven pull --json        # Machine-readable report`,
	RunE: runPull,
}

// runPull executes the fleet pull operation.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Command arguments (unused).
//
// Returns:
//   - error: Non-nil when any repository failed to pull.
func runPull(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ex := fleet.NewExecutor(newLocator(cfg))

	ui.StartSpinner("Pulling fleet repositories...")
	report := ex.Run(cmd.Context(), fleet.PullOp{}, cfg.TargetNames())
	ui.StopSpinner()

	printReport(report, jsonFlag(cmd))
	if !report.OK() {
		return fmt.Errorf("pull failed")
	}
	return nil
}
