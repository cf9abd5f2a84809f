// Package ui provides the ASCII banner for the RAVEN CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the ASCII art logo for the RAVEN CLI.
const banner = `
  ██████╗  █████╗ ██╗   ██╗███████╗███╗   ██╗
  ██╔══██╗██╔══██╗██║   ██║██╔════╝████╗  ██║
  ██████╔╝███████║██║   ██║█████╗  ██╔██╗ ██║
  ██╔══██╗██╔══██║╚██╗ ██╔╝██╔══╝  ██║╚██╗██║
  ██║  ██║██║  ██║ ╚████╔╝ ███████╗██║ ╚████║
  ╚═╝  ╚═╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═══╝`

// tagline is the product tagline.
const tagline = "Fleet control for the RAVEN rover stack"

// PrintBanner prints the RAVEN banner with version info.
//
// Parameters:
//   - version: The CLI version string to display
func PrintBanner(version string) {
	if quietMode {
		return
	}

	styledBanner := lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true).
		Render(banner)

	fmt.Println(styledBanner)
	fmt.Println()

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		PaddingLeft(2)
	fmt.Println(taglineStyle.Render(tagline))
	fmt.Println()

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		PaddingLeft(2)

	fmt.Println(infoStyle.Render(fmt.Sprintf("Version: %s", version)))
	fmt.Println()
}

// GetHelpText returns the curated help text for the CLI, used by `raven --help`.
func GetHelpText() string {
	orange := lipgloss.NewStyle().Foreground(Orange).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	return fmt.Sprintf(`%s

%s
  %s       Launch the vehicle stack (autonomous|manual|debug)
  %s              Stop every managed service
  %s            Show managed services and liveness

%s
  %s     Run tests across the fleet (or one repo)
  %s              Pull every fleet repository
  %s              Commit and push every fleet repository

%s
  %s             Detect and flash the embedded board
  %s            Show the detected serial device
  %s    Tail a service log

%s  raven doctor checks the toolchain and workspace.`,
		dim.Render(tagline+". One CLI for every repo on the rover."),
		orange.Render("Vehicle:"),
		orange.Render("raven start [mode]"),
		orange.Render("raven stop"),
		orange.Render("raven status"),
		orange.Render("Fleet:"),
		orange.Render("raven test [target]"),
		orange.Render("raven pull"),
		orange.Render("raven push"),
		orange.Render("Hardware:"),
		orange.Render("raven flash"),
		orange.Render("raven device"),
		orange.Render("raven logs <service>"),
		orange.Render("Help: "),
	)
}
