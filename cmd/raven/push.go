package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/fleet"
	"github.com/ravenrobotics/raven/internal/ui"
)

// pushMessage holds the --message flag.
var pushMessage string

// pushCmd stages, commits, and pushes every fleet repository.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Commit and push pending changes across the fleet repositories",
	Long: `Stage, commit, and push pending changes in every known repository.

Each repository with pending changes goes through 'git add -A',
'git commit', and 'git push'; the first failing step fails that
repository and the run moves on. Repositories with a clean worktree are
reported as unchanged and left untouched. Pushes retry transient
failures with backoff.

EXAMPLES:
  raven push                              # Default commit message
  raven push --message "Tune PID gains"   # Custom commit message`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVarP(&pushMessage, "message", "m", "", "Commit message (default: the configured message)")
}

// runPush executes the fleet push operation.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Command arguments (unused).
//
// Returns:
//   - error: Non-nil when any repository failed to push.
func runPush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	message := pushMessage
	if message == "" {
		message = cfg.CommitMessage()
	}

	ex := fleet.NewExecutor(newLocator(cfg))

	ui.StartSpinner("Pushing fleet repositories...")
	report := ex.Run(cmd.Context(), fleet.PushOp{Message: message}, cfg.TargetNames())
	ui.StopSpinner()

	printReport(report, jsonFlag(cmd))
	if !report.OK() {
		return fmt.Errorf("push failed")
	}
	return nil
}
