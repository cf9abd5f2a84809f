//go:build !windows

package flash

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeTool writes a shell script that records its arguments and exits
// with the given code when invoked with the named subcommand.
func fakeTool(t *testing.T, dir, name, failOn string) string {
	t.Helper()
	logPath := filepath.Join(dir, name+".args")
	script := "#!/bin/sh\n" +
		"echo \"$@\" >> " + logPath + "\n" +
		"if [ \"$1\" = \"" + failOn + "\" ]; then\n" +
		"  echo \"" + name + ": $1 blew up\" >&2\n" +
		"  exit 1\n" +
		"fi\n"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake %s: %v", name, err)
	}
	return path
}

func readArgs(t *testing.T, dir, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name+".args"))
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestParseArch(t *testing.T) {
	tests := []struct {
		in      string
		want    Arch
		wantErr bool
	}{
		{"arduino", ArchArduino, false},
		{"mbed", ArchMbed, false},
		{"avr", "", true},
		{"", "", true},
		{"Arduino", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseArch(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseArch(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseArch(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArduinoRunsCompileThenUpload(t *testing.T) {
	dir := t.TempDir()
	tool := fakeTool(t, dir, "arduino-cli", "never")

	cfg := Config{
		Dir:       dir,
		Port:      "/dev/ttyACM0",
		FQBN:      "arduino:avr:mega",
		BoardTool: tool,
	}
	steps, err := Run(context.Background(), ArchArduino, cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(steps) != 2 || steps[0].Name != "compile" || steps[1].Name != "upload" {
		t.Fatalf("steps = %+v, want compile then upload", steps)
	}

	calls := readArgs(t, dir, "arduino-cli")
	if len(calls) != 2 {
		t.Fatalf("tool invoked %d times, want 2: %v", len(calls), calls)
	}
	if calls[0] != "compile --fqbn arduino:avr:mega firmware" {
		t.Errorf("compile argv = %q", calls[0])
	}
	if calls[1] != "upload -p /dev/ttyACM0 --fqbn arduino:avr:mega firmware" {
		t.Errorf("upload argv = %q", calls[1])
	}
}

func TestArduinoStopsAfterCompileFailure(t *testing.T) {
	dir := t.TempDir()
	tool := fakeTool(t, dir, "arduino-cli", "compile")

	cfg := Config{Dir: dir, Port: "/dev/ttyACM0", FQBN: "arduino:avr:mega", BoardTool: tool}
	steps, err := Run(context.Background(), ArchArduino, cfg)
	if err == nil {
		t.Fatalf("Run() error = nil, want compile failure")
	}
	if !strings.Contains(err.Error(), "compile failed") {
		t.Errorf("error = %v, want compile step named", err)
	}
	if len(steps) != 1 {
		t.Errorf("steps = %+v, want only the failed compile", steps)
	}

	calls := readArgs(t, dir, "arduino-cli")
	if len(calls) != 1 {
		t.Errorf("tool invoked %d times after compile failure, want 1", len(calls))
	}
}

func TestMbedCompileFlags(t *testing.T) {
	dir := t.TempDir()
	fakeTool(t, dir, "mbed", "never")
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	cfg := Config{Dir: dir, MbedTarget: "NUCLEO_F446RE"}
	steps, err := Run(context.Background(), ArchMbed, cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(steps) != 1 || steps[0].Name != "compile+flash" {
		t.Fatalf("steps = %+v, want single compile+flash", steps)
	}

	calls := readArgs(t, dir, "mbed")
	if calls[0] != "compile -t GCC_ARM -m NUCLEO_F446RE -f" {
		t.Errorf("mbed argv = %q", calls[0])
	}
}

func TestRunUnknownArch(t *testing.T) {
	if _, err := Run(context.Background(), Arch("esp32"), Config{}); err == nil {
		t.Errorf("Run() error = nil for unknown arch")
	}
}
