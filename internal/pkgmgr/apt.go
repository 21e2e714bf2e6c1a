// Package pkgmgr wraps the apt package manager for non-interactive
// provisioning runs.
package pkgmgr

import (
	"fmt"

	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/logger"
)

// nonInteractive suppresses debconf prompts during installs.
var nonInteractive = []string{"DEBIAN_FRONTEND=noninteractive"}

// Apt drives apt-get through a CommandExecutor
type Apt struct {
	exec executor.CommandExecutor
}

// New creates an Apt using the system executor
func New() *Apt {
	return &Apt{exec: executor.NewSystemExecutor()}
}

// NewWithExecutor creates an Apt with a custom executor (for testing)
func NewWithExecutor(exec executor.CommandExecutor) *Apt {
	return &Apt{exec: exec}
}

// Update refreshes the package index. Output streams to the terminal
// so slow mirrors show progress.
func (a *Apt) Update() error {
	logger.Debug("running apt-get update")
	if err := a.exec.ExecuteStreamEnv(nonInteractive, "apt-get", "update", "-q"); err != nil {
		return fmt.Errorf("apt-get update failed: %w", err)
	}
	return nil
}

// Install installs the given packages, assuming yes to all prompts.
// Output streams to the terminal so long installs show progress.
func (a *Apt) Install(pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}

	logger.Debug("installing packages: %v", pkgs)
	args := append([]string{"install", "-y", "-q"}, pkgs...)
	if err := a.exec.ExecuteStreamEnv(nonInteractive, "apt-get", args...); err != nil {
		return fmt.Errorf("apt-get install failed: %w", err)
	}
	return nil
}

// IsInstalled reports whether a package is currently installed
func (a *Apt) IsInstalled(pkg string) bool {
	_, err := a.exec.Execute("dpkg", "-s", pkg)
	return err == nil
}

// Missing filters the given packages down to those dpkg does not know
// as installed, preserving order.
func (a *Apt) Missing(pkgs ...string) []string {
	var missing []string
	for _, pkg := range pkgs {
		if !a.IsInstalled(pkg) {
			missing = append(missing, pkg)
		}
	}
	return missing
}
