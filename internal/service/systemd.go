// Package service wraps systemctl for enabling and restarting host
// services.
package service

import (
	"fmt"
	"strings"

	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/logger"
)

// Manager drives systemctl through a CommandExecutor
type Manager struct {
	exec executor.CommandExecutor
}

// New creates a Manager using the system executor
func New() *Manager {
	return &Manager{exec: executor.NewSystemExecutor()}
}

// NewWithExecutor creates a Manager with a custom executor (for testing)
func NewWithExecutor(exec executor.CommandExecutor) *Manager {
	return &Manager{exec: exec}
}

// Enable marks a unit to start at boot
func (m *Manager) Enable(unit string) error {
	return m.run("enable", unit)
}

// Restart restarts a unit
func (m *Manager) Restart(unit string) error {
	return m.run("restart", unit)
}

// Reload asks a unit to reload its configuration
func (m *Manager) Reload(unit string) error {
	return m.run("reload", unit)
}

// IsActive reports whether a unit is currently running
func (m *Manager) IsActive(unit string) bool {
	output, err := m.exec.Execute("systemctl", "is-active", unit)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "active"
}

func (m *Manager) run(action, unit string) error {
	logger.Debug("systemctl %s %s", action, unit)
	output, err := m.exec.Execute("systemctl", action, unit)
	if err != nil {
		return fmt.Errorf("systemctl %s %s failed: %s", action, unit, string(output))
	}
	return nil
}
