package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ravenrobotics/raven/internal/device"
	"github.com/ravenrobotics/raven/internal/flash"
	"github.com/ravenrobotics/raven/internal/ui"
)

// Flash flag values.
var (
	flashArch = archValue{arch: flash.ArchArduino}
	flashPort string
)

// flashCmd builds firmware and uploads it to the connected board.
var flashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Build and upload firmware to the connected board",
	Long: `Build the firmware in raven-embedded and upload it to the board.

The board is detected automatically (serial enumeration first, then
'arduino-cli board list'); pass --port to skip detection. Detection
retries a few times because boards re-enumerate slowly after a reset.

Architectures:

  arduino   arduino-cli compile + upload (drive controller, default)
  mbed      mbed compile with flash-on-success (sensor controller)

EXAMPLES:
  raven flash                          # Arduino build + upload
  raven flash --arch mbed              # Sensor controller
  raven flash --port /dev/ttyACM1      # Pin the upload port`,
	RunE: runFlash,
}

func init() {
	flashCmd.Flags().Var(&flashArch, "arch", "Target architecture: arduino or mbed")
	flashCmd.Flags().StringVarP(&flashPort, "port", "p", "", "Serial device to upload through (skips detection)")
}

// archValue is a pflag.Value restricted to the supported architectures,
// rejecting unknown names at parse time.
type archValue struct {
	arch flash.Arch
}

var _ pflag.Value = (*archValue)(nil)

func (v *archValue) String() string { return string(v.arch) }

func (v *archValue) Set(s string) error {
	arch, err := flash.ParseArch(s)
	if err != nil {
		return err
	}
	v.arch = arch
	return nil
}

func (v *archValue) Type() string { return "arch" }

// runFlash resolves the board and runs the toolchain steps.
//
// Parameters:
//   - cmd: The cobra command.
//   - args: Command arguments (unused).
//
// Returns:
//   - error: Non-nil on unresolved device, missing toolchain, or a
//     failed build/upload step.
func runFlash(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	target, found := newLocator(cfg).Resolve("raven-embedded")
	if !found {
		ui.PrintError("raven-embedded is not checked out; nothing to flash")
		return fmt.Errorf("raven-embedded not found")
	}

	port := flashPort
	if port == "" {
		port = cfg.Flash.Port
	}
	if port == "" {
		ui.StartSpinner("Detecting board...")
		cand, err := device.NewResolver().ResolveWithRetry(ctx, 3, 2*time.Second)
		ui.StopSpinner()
		if err != nil {
			ui.PrintError("No embedded board detected. Plug the board in or pass --port.")
			return err
		}
		ui.PrintInfo("Using board at %s (%s)", cand.Path, cand.Source)
		port = cand.Path
	}

	flashCfg := flash.Config{
		Dir:        target.Path,
		Port:       port,
		FQBN:       cfg.FlashFQBN(),
		MbedTarget: cfg.FlashMbedTarget(),
	}
	if flashArch.arch == flash.ArchArduino {
		tool, found := device.NewResolver().FindBoardTool()
		if !found {
			ui.PrintError("arduino-cli not found. Install it or add it to PATH.")
			return fmt.Errorf("arduino-cli not found")
		}
		flashCfg.BoardTool = tool
	}

	ui.PrintInfo("Flashing %s firmware from %s", flashArch.arch, target.Path)
	steps, err := flash.Run(ctx, flashArch.arch, flashCfg)
	for _, step := range steps {
		if step.Result.OK() {
			ui.PrintSuccess("%s (%s)", step.Name, step.Result.Duration.Round(100*time.Millisecond))
		}
	}
	if err != nil {
		if len(steps) > 0 {
			last := steps[len(steps)-1]
			ui.PrintError("%s failed", last.Name)
			for _, line := range strings.Split(failedStepOutput(last), "\n") {
				fmt.Println("    " + line)
			}
		}
		return err
	}

	ui.PrintSuccess("Firmware uploaded to %s", port)
	return nil
}

// failedStepOutput picks the most useful captured stream from a failed
// flash step.
func failedStepOutput(step flash.Step) string {
	if out := strings.TrimSpace(step.Result.Stderr); out != "" {
		return out
	}
	if out := strings.TrimSpace(step.Result.Stdout); out != "" {
		return out
	}
	if step.Result.Err != nil {
		return step.Result.Err.Error()
	}
	return fmt.Sprintf("exit code %d", step.Result.Code)
}
