// Package main provides the doctor command for CLI diagnostics.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/ravenrobotics/raven/internal/config"
	"github.com/ravenrobotics/raven/internal/device"
	"github.com/ravenrobotics/raven/internal/execx"
	"github.com/ravenrobotics/raven/internal/supervise"
	"github.com/ravenrobotics/raven/internal/ui"
)

// DoctorCheck represents a single diagnostic check result.
type DoctorCheck struct {
	// Name is the check name (e.g., "Version", "Workspace").
	Name string `json:"name"`

	// Status is the check status: "ok", "warning", "error".
	Status string `json:"status"`

	// Message is the human-readable result message.
	Message string `json:"message"`

	// Details contains additional information (optional).
	Details string `json:"details,omitempty"`
}

// DoctorResult contains all diagnostic check results.
type DoctorResult struct {
	// Checks contains all individual check results.
	Checks []DoctorCheck `json:"checks"`

	// Issues is the count of checks with status "error" or "warning".
	Issues int `json:"issues"`

	// Healthy is true if no errors were found.
	Healthy bool `json:"healthy"`
}

var doctorOutputJSON bool

// doctorCmd runs diagnostic checks on the workstation.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check workstation health for fleet operations",
	Long: `Run diagnostic checks on this workstation.

CHECKS PERFORMED:
  - CLI version (release vs development build)
  - Git availability (pull/push need it)
  - Board tool (arduino-cli, used by flash and device fallback)
  - Workspace layout (fleet repositories checked out as siblings)
  - Embedded board detection
  - Service registry state (stale entries from a crashed run)

OUTPUT:
  Human-readable by default, JSON with --json flag.

EXAMPLES:
  raven doctor              # Run all checks
  raven doctor --json       # Output as JSON for scripting`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorOutputJSON, "json", false, "Output results as JSON")
}

// runDoctor executes all diagnostic checks.
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Error when any check reports status "error"
func runDoctor(cmd *cobra.Command, args []string) error {
	jsonOutput := doctorOutputJSON || jsonFlag(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !jsonOutput {
		ui.PrintBanner(version)
		ui.PrintInfo("Running diagnostic checks...")
		ui.Println()
	}

	result := DoctorResult{
		Checks:  make([]DoctorCheck, 0),
		Healthy: true,
	}

	checks := []DoctorCheck{
		checkVersion(),
		checkGit(cmd.Context()),
		checkBoardTool(cmd.Context()),
		checkWorkspace(cfg),
		checkBoard(cmd.Context()),
		checkRegistry(),
	}
	for _, check := range checks {
		result.Checks = append(result.Checks, check)
		switch check.Status {
		case "error":
			result.Healthy = false
			result.Issues++
		case "warning":
			result.Issues++
		}
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		printDoctorResults(result)
	}

	if !result.Healthy {
		return fmt.Errorf("health check failed")
	}

	return nil
}

// checkVersion reports the build the operator is running.
//
// Returns:
//   - DoctorCheck: The check result
func checkVersion() DoctorCheck {
	check := DoctorCheck{
		Name:   "Version",
		Status: "ok",
	}

	if version == "dev" {
		check.Status = "warning"
		check.Message = "Development build"
		check.Details = "Running a development build, not a released version"
	} else {
		check.Message = fmt.Sprintf("v%s", version)
		check.Details = fmt.Sprintf("Commit: %s, Built: %s", commit, date)
	}

	return check
}

// checkGit verifies git is installed; pull and push depend on it.
//
// Parameters:
//   - ctx: Context for the version probe
//
// Returns:
//   - DoctorCheck: The check result
func checkGit(ctx context.Context) DoctorCheck {
	check := DoctorCheck{
		Name:   "Git",
		Status: "ok",
	}

	path, err := exec.LookPath("git")
	if err != nil {
		check.Status = "error"
		check.Message = "git not found"
		check.Details = "Install git; 'raven pull' and 'raven push' require it"
		return check
	}

	res := execx.Run(ctx, "git", "--version")
	if res.OK() {
		check.Message = strings.TrimSpace(res.Stdout)
	} else {
		check.Message = "Installed"
	}
	check.Details = path

	return check
}

// checkBoardTool looks for arduino-cli and reports its version.
//
// Parameters:
//   - ctx: Context for the version probe
//
// Returns:
//   - DoctorCheck: The check result
func checkBoardTool(ctx context.Context) DoctorCheck {
	check := DoctorCheck{
		Name:   "Board Tool",
		Status: "ok",
	}

	tool, found := device.NewResolver().FindBoardTool()
	if !found {
		check.Status = "warning"
		check.Message = "arduino-cli not found"
		check.Details = "Arduino flashing and the board-list fallback are unavailable"
		return check
	}

	res := execx.Run(ctx, tool, "version", "--format", "json")
	if res.OK() {
		if v := gjson.Get(res.Stdout, "VersionString"); v.Exists() {
			check.Message = fmt.Sprintf("arduino-cli %s", v.String())
		} else {
			check.Message = "arduino-cli (version unknown)"
		}
	} else {
		check.Status = "warning"
		check.Message = "arduino-cli found but not responding"
	}
	check.Details = tool

	return check
}

// checkWorkspace verifies the fleet repositories are checked out as
// siblings of the CLI.
//
// Parameters:
//   - cfg: The merged CLI configuration
//
// Returns:
//   - DoctorCheck: The check result
func checkWorkspace(cfg *config.Config) DoctorCheck {
	check := DoctorCheck{
		Name:   "Workspace",
		Status: "ok",
	}

	locator := newLocator(cfg)
	root, err := locator.Root()
	if err != nil {
		check.Status = "error"
		check.Message = "Could not determine workspace root"
		check.Details = err.Error()
		return check
	}

	var missing []string
	names := cfg.TargetNames()
	for _, name := range names {
		if _, found := locator.Resolve(name); !found {
			missing = append(missing, name)
		}
	}

	if len(missing) == len(names) {
		check.Status = "error"
		check.Message = "No fleet repositories found"
		check.Details = fmt.Sprintf("Expected them as siblings under %s", root)
		return check
	}
	if len(missing) > 0 {
		check.Status = "warning"
		check.Message = fmt.Sprintf("%d of %d repositories missing", len(missing), len(names))
		check.Details = fmt.Sprintf("Missing: %s (clone them under %s)", strings.Join(missing, ", "), root)
		return check
	}

	check.Message = fmt.Sprintf("All %d repositories present", len(names))
	check.Details = root

	return check
}

// checkBoard probes for an attached embedded board. Absence is a
// warning; bench work without hardware is a normal state.
//
// Parameters:
//   - ctx: Context for the probe
//
// Returns:
//   - DoctorCheck: The check result
func checkBoard(ctx context.Context) DoctorCheck {
	check := DoctorCheck{
		Name:   "Board",
		Status: "ok",
	}

	cand, err := device.NewResolver().Resolve(ctx)
	if errors.Is(err, device.ErrNoDevice) {
		check.Status = "warning"
		check.Message = "No embedded board detected"
		check.Details = "Flashing and hardware tests need a board plugged in"
		return check
	}
	if err != nil {
		check.Status = "warning"
		check.Message = "Board detection failed"
		check.Details = err.Error()
		return check
	}

	check.Message = fmt.Sprintf("Detected at %s", cand.Path)
	if cand.Description != "" {
		check.Details = fmt.Sprintf("%s (via %s)", cand.Description, cand.Source)
	} else {
		check.Details = fmt.Sprintf("via %s", cand.Source)
	}

	return check
}

// checkRegistry inspects the service registry for stale state.
//
// Returns:
//   - DoctorCheck: The check result
func checkRegistry() DoctorCheck {
	check := DoctorCheck{
		Name:   "Services",
		Status: "ok",
	}

	entries, err := supervise.NewRegistry(config.RegistryPath()).Read()
	if err != nil {
		check.Status = "warning"
		check.Message = "Could not read service registry"
		check.Details = err.Error()
		return check
	}

	if len(entries) == 0 {
		check.Message = "No services registered"
		return check
	}

	running := 0
	var stale []string
	for _, e := range entries {
		if supervise.Alive(e.PID) {
			running++
		} else {
			stale = append(stale, e.Name)
		}
	}

	if len(stale) > 0 {
		check.Status = "warning"
		check.Message = fmt.Sprintf("%d stale registry entry(ies)", len(stale))
		check.Details = fmt.Sprintf("Not running: %s. 'raven stop' clears the registry.", strings.Join(stale, ", "))
		return check
	}

	check.Message = fmt.Sprintf("%d service(s) running", running)

	return check
}

// printDoctorResults prints the doctor results in human-readable format.
//
// Parameters:
//   - result: The doctor result to print
func printDoctorResults(result DoctorResult) {
	for _, check := range result.Checks {
		var icon string
		switch check.Status {
		case "ok":
			icon = ui.SuccessStyle.Render("✓")
		case "warning":
			icon = ui.WarningStyle.Render("⚠")
		case "error":
			icon = ui.ErrorStyle.Render("✗")
		}

		fmt.Printf("  %s %-12s %s\n", icon, check.Name+":", check.Message)

		if check.Details != "" {
			fmt.Printf("    %s\n", ui.DimStyle.Render(check.Details))
		}
	}

	ui.Println()

	if result.Issues > 0 {
		ui.PrintWarning("%d issue(s) found", result.Issues)
	} else {
		ui.PrintSuccess("All checks passed")
	}

	// Context-aware next steps based on check results.
	var steps []ui.NextStep
	for _, check := range result.Checks {
		switch {
		case check.Name == "Workspace" && check.Status != "ok":
			steps = append(steps, ui.NextStep{Label: "Check the fleet layout:", Command: "raven status"})
		case check.Name == "Services" && check.Status == "warning":
			steps = append(steps, ui.NextStep{Label: "Clear stale services:", Command: "raven stop"})
		case check.Name == "Board" && check.Status == "warning":
			steps = append(steps, ui.NextStep{Label: "Re-probe the board:", Command: "raven device"})
		}
	}

	if result.Healthy && len(steps) == 0 {
		steps = append(steps, ui.NextStep{Label: "Launch the fleet:", Command: "raven start"})
	}

	ui.PrintNextSteps(steps)
}
