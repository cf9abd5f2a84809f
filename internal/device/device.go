// Package device detects the embedded board attached to the host.
//
// Detection runs two sources in fixed priority order: native USB serial
// enumeration first, then the arduino-cli board listing as a fallback
// for setups where the serial stack hides the product strings. An
// absent board is a normal state (bench work without hardware), so it
// is reported as ErrNoDevice rather than a hard failure.
package device

import "errors"

// Source identifies which detection source produced a candidate.
type Source string

const (
	// SourceSerial is native USB serial enumeration.
	SourceSerial Source = "serial"

	// SourceBoardTool is the arduino-cli board listing.
	SourceBoardTool Source = "board-tool"
)

// Candidate is a detected embedded board.
type Candidate struct {
	// Path is the serial device path (e.g. /dev/ttyACM0).
	Path string `json:"path"`

	// Description is the human-readable board description, when the
	// source provides one.
	Description string `json:"description,omitempty"`

	// Source is the detection source that produced this candidate.
	Source Source `json:"source"`
}

// ErrNoDevice reports that no source found an attached board.
var ErrNoDevice = errors.New("no embedded board detected")
