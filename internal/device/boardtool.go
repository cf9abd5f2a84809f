// Package device detects the embedded board attached to the host.
package device

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// boardTool is the external board listing binary.
const boardTool = "arduino-cli"

// boardToolFallbacks are checked when the tool is not on PATH. These
// are the install locations used by the rover provisioning scripts.
var boardToolFallbacks = []string{
	"/usr/local/bin/arduino-cli",
	"/opt/arduino-cli/bin/arduino-cli",
}

// FindBoardTool locates the arduino-cli binary.
//
// PATH wins; the fixed fallback locations cover hosts where the
// provisioning scripts installed the tool without touching PATH.
//
// Returns:
//   - string: Path to the binary.
//   - bool: True if the tool was found.
func (r *Resolver) FindBoardTool() (string, bool) {
	if path, err := r.lookPath(boardTool); err == nil {
		return path, true
	}
	for _, path := range boardToolFallbacks {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// fromBoardTool runs `arduino-cli board list` and scans the table.
func (r *Resolver) fromBoardTool(ctx context.Context) (Candidate, bool) {
	tool, ok := r.FindBoardTool()
	if !ok {
		log.Debug("Board tool not installed", "tool", boardTool)
		return Candidate{}, false
	}

	res := r.runBoardList(ctx, tool)
	if !res.OK() {
		log.Warn("Board tool listing failed", "tool", tool, "error", res.Err)
		return Candidate{}, false
	}

	if c, ok := parseBoardList(res.Stdout); ok {
		log.Debug("Board found via board tool", "path", c.Path)
		return c, true
	}
	return Candidate{}, false
}

// parseBoardList scans arduino-cli's tabular output for the first line
// describing one of the rover's boards.
//
// The output is a whitespace-aligned table:
//
//	Port         Protocol Type              Board Name  FQBN            Core
//	/dev/ttyACM0 serial   Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr
//
// A line is a candidate when it mentions the Arduino family or a
// ttyACM path; the port is the first whitespace-delimited token.
// Header, blank, and malformed lines are skipped, never errors.
//
// Parameters:
//   - output: Raw stdout from `arduino-cli board list`.
//
// Returns:
//   - Candidate: The first matching board.
//   - bool: True if a candidate line was found.
func parseBoardList(output string) (Candidate, bool) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "Port") {
			continue
		}
		if !strings.Contains(trimmed, "Arduino") && !strings.Contains(trimmed, "/dev/ttyACM") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			continue
		}

		return Candidate{
			Path:        fields[0],
			Description: describeBoardLine(fields),
			Source:      SourceBoardTool,
		}, true
	}
	return Candidate{}, false
}

// describeBoardLine extracts a short description from a board list
// line: everything after the port column, collapsed to single spaces.
func describeBoardLine(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
