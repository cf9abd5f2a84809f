// Package device detects the embedded board attached to the host.
package device

import (
	"regexp"
	"strings"
)

// Board families carried on the rover. The ST dev board runs the
// sensor firmware, the Arduino runs the drive controller; both present
// these strings in their USB product descriptors.
var boardFamilies = []string{"STLink", "Arduino"}

// acmPattern matches the CDC-ACM device paths both board families
// register under on Linux.
var acmPattern = regexp.MustCompile(`^/dev/ttyACM[0-9]+$`)

// matchPort reports whether an enumerated serial port looks like one
// of the rover's boards. Description matching is case-sensitive; the
// vendor strings are fixed.
//
// Parameters:
//   - path: The serial device path.
//   - description: The USB product string, possibly empty.
//
// Returns:
//   - bool: True if the port belongs to a known board family.
func matchPort(path, description string) bool {
	for _, family := range boardFamilies {
		if strings.Contains(description, family) {
			return true
		}
	}
	return acmPattern.MatchString(path)
}
