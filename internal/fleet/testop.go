package fleet

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ravenrobotics/raven/internal/execx"
	"github.com/ravenrobotics/raven/internal/workspace"
)

// TestOp runs each target's own test suite with the runner its layout
// implies.
type TestOp struct{}

// Name implements Operation.
func (TestOp) Name() string { return "test" }

// Precondition requires a recognized test layout.
func (TestOp) Precondition(target workspace.Target) (bool, string) {
	if _, ok := testCommand(target.Path); !ok {
		return false, "no recognized test layout"
	}
	return true, ""
}

// Execute runs the detected test command in the target checkout.
func (TestOp) Execute(ctx context.Context, target workspace.Target) Outcome {
	command, _ := testCommand(target.Path)
	res := execx.RunShell(ctx, target.Path, nil, command)
	return classify(res)
}

// HardwareTestOp runs the on-board suite in the embedded checkout,
// pointing the harness at the resolved serial device.
type HardwareTestOp struct {
	// Port is the device path exported to the suite as RAVEN_PORT.
	// Empty means no board was detected.
	Port string
}

// Name implements Operation.
func (HardwareTestOp) Name() string { return "hardware test" }

// Precondition requires a detected board and the tests/hardware suite.
func (op HardwareTestOp) Precondition(target workspace.Target) (bool, string) {
	if op.Port == "" {
		return false, "no embedded board detected"
	}
	info, err := os.Stat(filepath.Join(target.Path, "tests", "hardware"))
	if err != nil || !info.IsDir() {
		return false, "no hardware test suite"
	}
	return true, ""
}

// Execute runs pytest against tests/hardware with the board exported.
func (op HardwareTestOp) Execute(ctx context.Context, target workspace.Target) Outcome {
	env := []string{"RAVEN_PORT=" + op.Port}
	res := execx.RunShell(ctx, target.Path, env, "python3 -m pytest tests/hardware")
	return classify(res)
}

// testCommand maps a checkout's layout to its test runner.
//
// Recognized layouts, first match wins:
//   - Makefile with a test target  -> make test
//   - package.json with scripts.test -> npm test --silent
//   - pytest config plus a tests/ dir -> python3 -m pytest
//
// Returns:
//   - string: The shell command to run.
//   - bool: False when no layout is recognized.
func testCommand(dir string) (string, bool) {
	switch {
	case hasMakeTestTarget(dir):
		return "make test", true
	case hasNpmTestScript(dir):
		return "npm test --silent", true
	case hasPytestLayout(dir):
		return "python3 -m pytest", true
	}
	return "", false
}

// hasMakeTestTarget scans the Makefile for a rule named test.
func hasMakeTestTarget(dir string) bool {
	f, err := os.Open(filepath.Join(dir, "Makefile"))
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "test:") || strings.HasPrefix(line, "test :") {
			return true
		}
	}
	return false
}

// hasNpmTestScript checks package.json for a scripts.test entry.
func hasNpmTestScript(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return false
	}
	return gjson.GetBytes(data, "scripts.test").Exists()
}

// hasPytestLayout checks for a pytest configuration file next to a
// tests/ directory.
func hasPytestLayout(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "tests"))
	if err != nil || !info.IsDir() {
		return false
	}
	for _, name := range []string{"pytest.ini", "pyproject.toml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
