// Package config provides RAVEN CLI configuration management.
//
// This package exposes the compiled-in fleet defaults (the sibling
// repository set, the managed service definitions, flash settings) and
// handles the optional ~/.raven/config.yaml override file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the merged CLI configuration: compiled-in defaults
// overlaid with ~/.raven/config.yaml when that file exists.
type Config struct {
	// Workspace contains workspace root resolution overrides.
	Workspace WorkspaceConfig `yaml:"workspace,omitempty"`

	// Targets overrides the fleet repository list. Empty means the
	// built-in RAVEN repository set.
	Targets []string `yaml:"targets,omitempty"`

	// Services overrides the managed service definitions. Empty means
	// the built-in brain/embedded/dashboard set.
	Services []Service `yaml:"services,omitempty"`

	// Flash contains board flashing settings.
	Flash FlashConfig `yaml:"flash,omitempty"`

	// Defaults contains default settings for commands.
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// WorkspaceConfig contains workspace root resolution overrides.
type WorkspaceConfig struct {
	// Root pins the workspace root directory. When empty the root is
	// derived from the installed CLI binary's location.
	Root string `yaml:"root,omitempty"`
}

// FlashConfig contains settings for the flash command.
type FlashConfig struct {
	// FQBN is the fully qualified board name for arduino-cli
	// (e.g. "arduino:avr:mega").
	FQBN string `yaml:"fqbn,omitempty"`

	// MbedTarget is the mbed target board name (e.g. "NUCLEO_F446RE").
	MbedTarget string `yaml:"mbed_target,omitempty"`

	// Port pins the serial device path, skipping detection.
	Port string `yaml:"port,omitempty"`
}

// Defaults contains default settings for commands.
type Defaults struct {
	// Mode is the start mode used when none is given on the command line.
	Mode string `yaml:"mode,omitempty"`

	// CommitMessage is the commit message used by push when --message
	// is not given.
	CommitMessage string `yaml:"commit_message,omitempty"`
}

// Built-in fleet defaults. These match the RAVEN workspace layout; a
// config.yaml can override them for forks or trimmed checkouts.
var defaultTargets = []string{
	"raven-brain",
	"raven-embedded",
	"raven-dashboard",
	"raven-docs",
}

const (
	// DefaultFQBN is the arduino-cli board identifier for the stock
	// RAVEN drive controller.
	DefaultFQBN = "arduino:avr:mega"

	// DefaultMbedTarget is the mbed board name for the stock RAVEN
	// sensor controller.
	DefaultMbedTarget = "NUCLEO_F446RE"

	// DefaultCommitMessage is used by push when no --message is given.
	DefaultCommitMessage = "Update from RAVEN CLI"
)

// Load reads the merged configuration.
//
// A missing config file is not an error: the compiled-in defaults are
// returned. A present but unparsable file is an error so typos do not
// silently fall back to defaults.
//
// Returns:
//   - *Config: The merged configuration.
//   - error: Error if the config file exists but cannot be parsed.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from an explicit path.
//
// Parameters:
//   - path: Path to the config.yaml file.
//
// Returns:
//   - *Config: The merged configuration.
//   - error: Error if the file exists but cannot be read or parsed.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// TargetNames returns the fleet repository list in fixed order.
//
// Returns:
//   - []string: Configured targets, or the built-in RAVEN set.
func (c *Config) TargetNames() []string {
	if len(c.Targets) > 0 {
		return c.Targets
	}
	return defaultTargets
}

// IsKnownTarget reports whether name is in the fleet repository list.
//
// Parameters:
//   - name: The repository name to check.
//
// Returns:
//   - bool: True if the name is a configured fleet target.
func (c *Config) IsKnownTarget(name string) bool {
	for _, t := range c.TargetNames() {
		if t == name {
			return true
		}
	}
	return false
}

// FlashFQBN returns the arduino board identifier to flash.
func (c *Config) FlashFQBN() string {
	if c.Flash.FQBN != "" {
		return c.Flash.FQBN
	}
	return DefaultFQBN
}

// FlashMbedTarget returns the mbed board name to flash.
func (c *Config) FlashMbedTarget() string {
	if c.Flash.MbedTarget != "" {
		return c.Flash.MbedTarget
	}
	return DefaultMbedTarget
}

// CommitMessage returns the push commit message default.
func (c *Config) CommitMessage() string {
	if c.Defaults.CommitMessage != "" {
		return c.Defaults.CommitMessage
	}
	return DefaultCommitMessage
}

// StartMode returns the start mode default.
func (c *Config) StartMode() string {
	if c.Defaults.Mode != "" {
		return c.Defaults.Mode
	}
	return ModeAutonomous
}
