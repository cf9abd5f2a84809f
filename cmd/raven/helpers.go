// Package main provides shared helper functions for CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ravenrobotics/raven/internal/config"
	"github.com/ravenrobotics/raven/internal/fleet"
	"github.com/ravenrobotics/raven/internal/ui"
	"github.com/ravenrobotics/raven/internal/workspace"
)

// loadConfig reads the merged CLI configuration. A missing config file
// yields the built-in defaults; a broken one is reported and returned
// as an error.
//
// Returns:
//   - *config.Config: The merged configuration.
//   - error: Error if a present config file could not be parsed.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("Failed to load config: %v", err)
		return nil, err
	}
	return cfg, nil
}

// newLocator builds the workspace locator, honoring a pinned root from
// the config file.
func newLocator(cfg *config.Config) *workspace.Locator {
	return workspace.NewLocator(cfg.Workspace.Root)
}

// jsonFlag reads the global --json flag.
func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("json")
	return v
}

// printReport renders a fleet report as a table (or JSON) followed by
// the aggregate summary line and full details for each failed target.
//
// Parameters:
//   - report: The fleet report to render.
//   - jsonOutput: Whether to emit machine-readable JSON instead.
func printReport(report fleet.Report, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println()
	table := ui.NewTable("TARGET", "STATUS", "DETAIL")
	table.SetMaxWidth(2, 60)
	for _, o := range report.Outcomes {
		table.AddRow(o.Target, statusLabel(o.Status), outcomeCell(o))
	}
	table.Render()

	// Full diagnostics for failures; the table cell only fits one line.
	for _, o := range report.Outcomes {
		if o.Status != fleet.StatusFailed || o.Detail == "" {
			continue
		}
		fmt.Println()
		ui.PrintError("%s:", o.Target)
		for _, line := range strings.Split(o.Detail, "\n") {
			fmt.Println("    " + line)
		}
	}

	fmt.Println()
	if report.OK() {
		ui.PrintSuccess("Fleet %s: %s", report.Operation, report.Summary())
	} else {
		ui.PrintError("Fleet %s: %s", report.Operation, report.Summary())
	}
	ui.PrintDim("Run %s finished in %s", report.ID, report.Duration.Round(time.Millisecond))
}

// statusLabel renders a status with its marker and color.
func statusLabel(s fleet.Status) string {
	switch s {
	case fleet.StatusPassed:
		return ui.StatusPassedStyle.Render("✓ passed")
	case fleet.StatusFailed:
		return ui.StatusFailedStyle.Render("✗ failed")
	case fleet.StatusSkipped:
		return ui.StatusSkippedStyle.Render("- skipped")
	case fleet.StatusNoChanges:
		return ui.StatusSkippedStyle.Render("- no changes")
	}
	return string(s)
}

// outcomeCell condenses an outcome into one table cell.
func outcomeCell(o fleet.Outcome) string {
	if o.Reason != "" {
		return o.Reason
	}
	if o.Detail != "" {
		return firstLine(o.Detail)
	}
	return ""
}

// firstLine returns the first line of a possibly multi-line string.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
