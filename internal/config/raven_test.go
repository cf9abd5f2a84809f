package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want nil", err)
	}

	targets := cfg.TargetNames()
	want := []string{"raven-brain", "raven-embedded", "raven-dashboard", "raven-docs"}
	if len(targets) != len(want) {
		t.Fatalf("TargetNames() = %v, want %v", targets, want)
	}
	for i, name := range want {
		if targets[i] != name {
			t.Errorf("TargetNames()[%d] = %q, want %q", i, targets[i], name)
		}
	}

	if len(cfg.ServiceList()) != 3 {
		t.Errorf("ServiceList() has %d services, want 3", len(cfg.ServiceList()))
	}
	if cfg.FlashFQBN() != DefaultFQBN {
		t.Errorf("FlashFQBN() = %q, want %q", cfg.FlashFQBN(), DefaultFQBN)
	}
	if cfg.StartMode() != ModeAutonomous {
		t.Errorf("StartMode() = %q, want %q", cfg.StartMode(), ModeAutonomous)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
targets:
  - raven-brain
  - raven-embedded
services:
  - name: brain
    target: raven-brain
    command: python3 -m raven_brain --profile
flash:
  fqbn: arduino:avr:uno
defaults:
  mode: manual
  commit_message: WIP
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want nil", err)
	}

	if got := cfg.TargetNames(); len(got) != 2 {
		t.Errorf("TargetNames() = %v, want 2 entries", got)
	}
	if got := cfg.ServiceList(); len(got) != 1 || got[0].Command != "python3 -m raven_brain --profile" {
		t.Errorf("ServiceList() = %+v, want the single overridden brain service", got)
	}
	if cfg.FlashFQBN() != "arduino:avr:uno" {
		t.Errorf("FlashFQBN() = %q, want %q", cfg.FlashFQBN(), "arduino:avr:uno")
	}
	if cfg.StartMode() != ModeManual {
		t.Errorf("StartMode() = %q, want %q", cfg.StartMode(), ModeManual)
	}
	if cfg.CommitMessage() != "WIP" {
		t.Errorf("CommitMessage() = %q, want %q", cfg.CommitMessage(), "WIP")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("targets: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil, want parse error")
	}
}

func TestValidMode(t *testing.T) {
	tests := []struct {
		mode string
		want bool
	}{
		{"autonomous", true},
		{"manual", true},
		{"debug", true},
		{"", false},
		{"turbo", false},
		{"Autonomous", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := ValidMode(tt.mode); got != tt.want {
				t.Errorf("ValidMode(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestServicesFor(t *testing.T) {
	cfg := &Config{}

	tests := []struct {
		mode string
		want []string
	}{
		{ModeAutonomous, []string{"brain", "embedded"}},
		{ModeManual, []string{"embedded", "dashboard"}},
		{ModeDebug, []string{"brain", "embedded", "dashboard"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			services := cfg.ServicesFor(tt.mode)
			if len(services) != len(tt.want) {
				t.Fatalf("ServicesFor(%q) has %d services, want %d", tt.mode, len(services), len(tt.want))
			}
			for i, name := range tt.want {
				if services[i].Name != name {
					t.Errorf("ServicesFor(%q)[%d] = %q, want %q", tt.mode, i, services[i].Name, name)
				}
			}
		})
	}
}

func TestFindService(t *testing.T) {
	cfg := &Config{}

	svc, err := cfg.FindService("embedded")
	if err != nil {
		t.Fatalf("FindService(embedded) error = %v, want nil", err)
	}
	if svc.Target != "raven-embedded" {
		t.Errorf("FindService(embedded).Target = %q, want raven-embedded", svc.Target)
	}

	if _, err := cfg.FindService("rocket"); err == nil {
		t.Error("FindService(rocket) error = nil, want unknown service error")
	}
}

func TestModeEnv(t *testing.T) {
	env := ModeEnv(ModeAutonomous)
	if len(env) != 1 || env[0] != "RAVEN_MODE=autonomous" {
		t.Errorf("ModeEnv(autonomous) = %v, want [RAVEN_MODE=autonomous]", env)
	}

	env = ModeEnv(ModeDebug)
	if len(env) != 2 || env[1] != "RAVEN_SIM=1" {
		t.Errorf("ModeEnv(debug) = %v, want simulator flag appended", env)
	}
}

func TestIsKnownTarget(t *testing.T) {
	cfg := &Config{}

	if !cfg.IsKnownTarget("raven-docs") {
		t.Error("IsKnownTarget(raven-docs) = false, want true")
	}
	if cfg.IsKnownTarget("raven-cloud") {
		t.Error("IsKnownTarget(raven-cloud) = true, want false")
	}
}
