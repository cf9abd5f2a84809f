// Package config provides RAVEN CLI configuration management.
//
// This file defines the managed service set and the start modes that
// select which services launch.
package config

import (
	"fmt"
	"strings"
)

// Start modes for the vehicle stack.
const (
	// ModeAutonomous runs the full autonomy stack.
	ModeAutonomous = "autonomous"

	// ModeManual runs operator-driven control through the dashboard.
	ModeManual = "manual"

	// ModeDebug runs every service against the simulator.
	ModeDebug = "debug"
)

// Modes lists all valid start modes in display order.
var Modes = []string{ModeAutonomous, ModeManual, ModeDebug}

// Service describes one managed RAVEN process.
type Service struct {
	// Name is the service identifier used in the registry and log files.
	Name string `yaml:"name"`

	// Target is the fleet repository the service runs in.
	Target string `yaml:"target"`

	// Command is the shell command line that starts the service.
	Command string `yaml:"command"`

	// Modes lists the start modes that launch this service.
	// Empty means every mode.
	Modes []string `yaml:"modes,omitempty"`
}

// RunsIn reports whether the service launches in the given mode.
//
// Parameters:
//   - mode: The start mode to check.
//
// Returns:
//   - bool: True if the service is part of the mode's service set.
func (s Service) RunsIn(mode string) bool {
	if len(s.Modes) == 0 {
		return true
	}
	for _, m := range s.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Built-in managed services. The mode sets mirror how the vehicle is
// operated: autonomy needs the brain and the hardware bridge, manual
// drives through the dashboard, debug runs everything in simulation.
var defaultServices = []Service{
	{
		Name:    "brain",
		Target:  "raven-brain",
		Command: "python3 -m raven_brain",
		Modes:   []string{ModeAutonomous, ModeDebug},
	},
	{
		Name:    "embedded",
		Target:  "raven-embedded",
		Command: "python3 -m raven_bridge",
	},
	{
		Name:    "dashboard",
		Target:  "raven-dashboard",
		Command: "npm start",
		Modes:   []string{ModeManual, ModeDebug},
	},
}

// ValidMode reports whether mode is a recognized start mode.
func ValidMode(mode string) bool {
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// ServiceList returns the managed service definitions.
//
// Returns:
//   - []Service: Configured services, or the built-in set.
func (c *Config) ServiceList() []Service {
	if len(c.Services) > 0 {
		return c.Services
	}
	return defaultServices
}

// ServicesFor returns the services that launch in the given mode, in
// definition order.
//
// Parameters:
//   - mode: The start mode.
//
// Returns:
//   - []Service: Services whose mode set includes the mode.
func (c *Config) ServicesFor(mode string) []Service {
	var out []Service
	for _, s := range c.ServiceList() {
		if s.RunsIn(mode) {
			out = append(out, s)
		}
	}
	return out
}

// FindService looks up a managed service by name.
//
// Parameters:
//   - name: The service name.
//
// Returns:
//   - Service: The matching definition.
//   - error: Error naming the valid services when the name is unknown.
func (c *Config) FindService(name string) (Service, error) {
	var names []string
	for _, s := range c.ServiceList() {
		if s.Name == name {
			return s, nil
		}
		names = append(names, s.Name)
	}
	return Service{}, fmt.Errorf("unknown service %q (available: %s)", name, strings.Join(names, ", "))
}

// ModeEnv returns the environment overrides every service receives for
// the given mode. Debug mode additionally points the stack at the
// simulator instead of the vehicle hardware.
//
// Parameters:
//   - mode: The start mode.
//
// Returns:
//   - []string: KEY=value pairs to append to the inherited environment.
func ModeEnv(mode string) []string {
	env := []string{"RAVEN_MODE=" + mode}
	if mode == ModeDebug {
		env = append(env, "RAVEN_SIM=1")
	}
	return env
}
