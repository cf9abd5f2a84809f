package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/config"
	"github.com/ravenrobotics/raven/internal/logtail"
	"github.com/ravenrobotics/raven/internal/ui"
)

// Logs flag values.
var (
	logsFollow bool
	logsLines  int
)

// logsCmd shows a managed service's captured output.
var logsCmd = &cobra.Command{
	Use:   "logs [service]",
	Short: "Show a managed service's log",
	Long: `Show the captured output of a managed service.

Each service writes to its own file under the state directory; the file
is truncated on every 'raven start', so it always covers the current
run. Defaults to the brain when no service is named.

With --follow the command streams new lines as the service writes them.
Press Ctrl+C to stop following.

EXAMPLES:
  raven logs                    # Last lines from the brain
  raven logs dashboard -n 200   # More history from the dashboard
  raven logs embedded --follow  # Stream the hardware bridge live`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Stream new log lines until interrupted")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "Number of trailing lines to print")
}

// runLogs prints the log tail and optionally follows appends.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Optional service name.
//
// Returns:
//   - error: Error on an unknown service name or an unreadable log.
func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := "brain"
	if len(args) > 0 {
		name = args[0]
	}
	svc, err := cfg.FindService(name)
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("unknown service: %s", name)
	}

	path := config.ServiceLogPath(svc.Name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		ui.PrintWarning("No log file for %s yet.", svc.Name)
		ui.PrintNextSteps([]ui.NextStep{
			{Label: "Launch the fleet:", Command: "raven start"},
		})
		return nil
	}

	lines, err := logtail.LastLines(path, logsLines)
	if err != nil {
		ui.PrintError("Failed to read %s: %v", path, err)
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}

	if !logsFollow {
		return nil
	}

	// Ctrl+C ends the follow loop; that is a clean exit, not a failure.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := logtail.Follow(ctx, path, os.Stdout); err != nil {
		ui.PrintError("Log follow failed: %v", err)
		return err
	}
	return nil
}
