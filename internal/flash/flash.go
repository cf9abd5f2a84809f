// Package flash builds rover firmware and uploads it to a connected
// board.
//
// Two toolchains are supported: arduino-cli for the maker boards and
// mbed for the ST dev boards. Steps run with captured output and no
// imposed timeout; a firmware upload is never interrupted mid-write.
package flash

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ravenrobotics/raven/internal/execx"
)

// Arch selects the firmware toolchain.
type Arch string

const (
	// ArchArduino builds and uploads with arduino-cli.
	ArchArduino Arch = "arduino"

	// ArchMbed builds with mbed and flashes on success.
	ArchMbed Arch = "mbed"
)

// mbedTool is the mbed CLI binary, resolved via PATH.
const mbedTool = "mbed"

// firmwareSubdir is the sketch directory inside the embedded checkout
// that arduino-cli builds.
const firmwareSubdir = "firmware"

// ParseArch validates a user-supplied architecture name.
func ParseArch(s string) (Arch, error) {
	switch Arch(s) {
	case ArchArduino, ArchMbed:
		return Arch(s), nil
	}
	return "", fmt.Errorf("unknown architecture %q (expected arduino or mbed)", s)
}

// Config carries everything a flash run needs.
type Config struct {
	// Dir is the embedded checkout the toolchain runs in.
	Dir string

	// Port is the serial device to upload through.
	Port string

	// FQBN is the arduino-cli fully qualified board name.
	FQBN string

	// MbedTarget is the mbed compile target board.
	MbedTarget string

	// BoardTool is the resolved arduino-cli path.
	BoardTool string
}

// Step is one toolchain invocation with its captured result.
type Step struct {
	Name   string
	Result execx.Result
}

// Run executes the build and upload steps for arch, stopping at the
// first failure.
//
// Parameters:
//   - ctx: Context for the toolchain commands.
//   - arch: Toolchain to use.
//   - cfg: Flash parameters.
//
// Returns:
//   - []Step: Steps attempted, in order, including the failed one.
//   - error: Error describing the first failed step, nil when every
//     step passed.
func Run(ctx context.Context, arch Arch, cfg Config) ([]Step, error) {
	switch arch {
	case ArchArduino:
		return runSteps(cfg, []planned{
			{"compile", func() execx.Result {
				return execx.RunIn(ctx, cfg.Dir, cfg.BoardTool, "compile", "--fqbn", cfg.FQBN, firmwareSubdir)
			}},
			{"upload", func() execx.Result {
				return execx.RunIn(ctx, cfg.Dir, cfg.BoardTool, "upload", "-p", cfg.Port, "--fqbn", cfg.FQBN, firmwareSubdir)
			}},
		})
	case ArchMbed:
		return runSteps(cfg, []planned{
			{"compile+flash", func() execx.Result {
				return execx.RunIn(ctx, cfg.Dir, mbedTool, "compile", "-t", "GCC_ARM", "-m", cfg.MbedTarget, "-f")
			}},
		})
	}
	return nil, fmt.Errorf("unknown architecture %q", arch)
}

type planned struct {
	name string
	run  func() execx.Result
}

func runSteps(cfg Config, plan []planned) ([]Step, error) {
	var steps []Step
	for _, p := range plan {
		log.Debug("Running flash step", "step", p.name, "dir", cfg.Dir)
		res := p.run()
		steps = append(steps, Step{Name: p.name, Result: res})
		if !res.OK() {
			return steps, fmt.Errorf("%s failed: %s", p.name, failureLine(res))
		}
	}
	return steps, nil
}

// failureLine condenses a failed result into one line for the error.
// The full captured output stays on the Step for verbose display.
func failureLine(res execx.Result) string {
	if line := execx.Tail(res.Stderr, 1); line != "" {
		return line
	}
	if line := execx.Tail(res.Stdout, 1); line != "" {
		return line
	}
	if res.Err != nil {
		return res.Err.Error()
	}
	return fmt.Sprintf("exit code %d", res.Code)
}
