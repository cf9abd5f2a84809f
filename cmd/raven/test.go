package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/device"
	"github.com/ravenrobotics/raven/internal/fleet"
	"github.com/ravenrobotics/raven/internal/ui"
)

// testCmd runs the fleet test operation.
var testCmd = &cobra.Command{
	Use:   "test [target|hardware]",
	Short: "Run test suites across the fleet repositories",
	Long: `Run each repository's own test suite.

Without arguments every known repository is tested in order. A
repository that is not checked out, or has no recognized test layout
(Makefile test target, package.json test script, or pytest setup), is
skipped rather than failed. One broken repository never stops the rest
of the run.

The special target 'hardware' runs the hardware-in-the-loop suite in
raven-embedded against the connected board, with the board's device
path exported as RAVEN_PORT.

EXAMPLES:
  raven test               # Test every repository
  raven test raven-brain   # Test one repository
  raven test hardware      # On-board suite against the connected board`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

// runTest executes the requested fleet test run.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Optional target name or "hardware".
//
// Returns:
//   - error: Non-nil when any target failed, or on a hard
//     configuration error (unknown target name).
func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ex := fleet.NewExecutor(newLocator(cfg))

	var report fleet.Report
	switch {
	case len(args) == 1 && args[0] == "hardware":
		port := ""
		if cand, err := device.NewResolver().Resolve(ctx); err != nil {
			ui.PrintWarning("No embedded board detected; the hardware suite will be skipped")
		} else {
			ui.PrintInfo("Using board at %s (%s)", cand.Path, cand.Source)
			port = cand.Path
		}
		report = ex.Run(ctx, fleet.HardwareTestOp{Port: port}, []string{"raven-embedded"})

	case len(args) == 1:
		name := args[0]
		if !cfg.IsKnownTarget(name) {
			ui.PrintError("Unknown target '%s'. Known targets: %s", name, strings.Join(cfg.TargetNames(), ", "))
			return fmt.Errorf("unknown target: %s", name)
		}
		ui.StartSpinner("Running tests...")
		report = ex.Run(ctx, fleet.TestOp{}, []string{name})
		ui.StopSpinner()

	default:
		ui.StartSpinner("Running fleet tests...")
		report = ex.Run(ctx, fleet.TestOp{}, cfg.TargetNames())
		ui.StopSpinner()
	}

	printReport(report, jsonFlag(cmd))
	if !report.OK() {
		return fmt.Errorf("test failed")
	}
	return nil
}
