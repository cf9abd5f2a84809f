package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/device"
	"github.com/ravenrobotics/raven/internal/ui"
)

var deviceCopy bool

// deviceCmd reports the embedded board attached to this machine.
var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Detect the embedded board attached to this machine",
	Long: `Detect the embedded board attached to this machine.

Detection checks native USB serial enumeration first, then falls back
to 'arduino-cli board list'. Nothing is cached; every invocation probes
the hardware again, so it is safe to run right after plugging in.

An absent board is reported as a warning, not a failure.

EXAMPLES:
  raven device                # Show the detected board
  raven device --copy         # Also copy the port path to the clipboard
  raven device --json         # Machine-readable output`,
	RunE: runDevice,
}

func init() {
	deviceCmd.Flags().BoolVar(&deviceCopy, "copy", false, "Copy the detected port path to the clipboard")
}

// runDevice probes for a board and prints what it found.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Command arguments (unused).
//
// Returns:
//   - error: Nil when no board is attached (that is a warning, not a
//     failure); non-nil only on unexpected probe errors.
func runDevice(cmd *cobra.Command, args []string) error {
	cand, err := device.NewResolver().Resolve(cmd.Context())
	if errors.Is(err, device.ErrNoDevice) {
		ui.PrintWarning("No embedded board detected. Plug one in and run 'raven device' again.")
		return nil
	}
	if err != nil {
		return err
	}

	if jsonFlag(cmd) {
		data, _ := json.MarshalIndent(cand, "", "  ")
		fmt.Println(string(data))
	} else {
		ui.PrintSuccess("Board detected")
		ui.PrintInfo("Port:        %s", cand.Path)
		if cand.Description != "" {
			ui.PrintInfo("Description: %s", cand.Description)
		}
		ui.PrintInfo("Source:      %s", cand.Source)
	}

	if deviceCopy {
		if err := clipboard.WriteAll(cand.Path); err != nil {
			ui.PrintWarning("Could not copy to clipboard: %v", err)
		} else {
			ui.PrintDim("Port path copied to clipboard")
		}
	}
	return nil
}
