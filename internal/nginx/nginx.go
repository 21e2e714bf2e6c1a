// Package nginx writes, activates, and reloads the reverse-proxy
// virtual host for the managed site.
package nginx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/furyashnyy/Npmginx/internal/errors"
	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/logger"
	"github.com/furyashnyy/Npmginx/internal/service"
)

// Manager manipulates the sites-available/sites-enabled layout and
// drives the nginx binary through a CommandExecutor
type Manager struct {
	available string
	enabled   string
	exec      executor.CommandExecutor
	svc       *service.Manager
}

// New creates a Manager for the given config directories
func New(available, enabled string) *Manager {
	return NewWithExecutor(available, enabled, executor.NewSystemExecutor())
}

// NewWithExecutor creates a Manager with a custom executor (for testing)
func NewWithExecutor(available, enabled string, exec executor.CommandExecutor) *Manager {
	return &Manager{
		available: available,
		enabled:   enabled,
		exec:      exec,
		svc:       service.NewWithExecutor(exec),
	}
}

// WriteSite writes the vhost config to sites-available. An existing
// config for the domain is always replaced.
func (m *Manager) WriteSite(domain, content string) error {
	for _, dir := range []string{m.available, m.enabled} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	path := filepath.Join(m.available, domain)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write vhost config: %w", err)
	}
	logger.Debug("wrote vhost config to %s", path)
	return nil
}

// Enable activates the vhost by symlinking it into sites-enabled.
// Re-running replaces an existing symlink (ln -sf semantics); a
// regular file at the link path is left alone and reported.
func (m *Manager) Enable(domain string) error {
	source := filepath.Join(m.available, domain)
	target := filepath.Join(m.enabled, domain)

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("vhost %s not found in sites-available", domain)
	}

	if info, err := os.Lstat(target); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("%s exists and is not a symlink, refusing to replace", target)
		}
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to replace existing symlink: %w", err)
		}
	}

	if err := os.Symlink(source, target); err != nil {
		return fmt.Errorf("failed to enable vhost: %w", err)
	}
	return nil
}

// IsEnabled checks if the vhost symlink exists
func (m *Manager) IsEnabled(domain string) (bool, error) {
	target := filepath.Join(m.enabled, domain)
	_, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check vhost status: %w", err)
	}
	return true, nil
}

// RemoveDefault drops the distro default site from sites-enabled so it
// cannot shadow the managed vhost. A missing default site is fine.
func (m *Manager) RemoveDefault() error {
	target := filepath.Join(m.enabled, "default")
	err := os.Remove(target)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove default site: %w", err)
	}
	if err == nil {
		logger.Debug("removed default site from %s", m.enabled)
	}
	return nil
}

// Test validates the nginx config syntax
func (m *Manager) Test() error {
	output, err := m.exec.Execute("nginx", "-t")
	if err != nil {
		return fmt.Errorf("nginx config test failed: %s", string(output))
	}
	return nil
}

// Reload reloads nginx to apply changes
func (m *Manager) Reload() error {
	if err := m.svc.Reload("nginx"); err != nil {
		// Try nginx -s reload as fallback
		output, ferr := m.exec.Execute("nginx", "-s", "reload")
		if ferr != nil {
			return fmt.Errorf("failed to reload nginx: %s", string(output))
		}
	}
	return nil
}

// Apply writes and activates the vhost, then validates the full nginx
// configuration BEFORE reloading. A failed test aborts with the old
// process still serving the previous config; reload never runs after
// a failed test.
func (m *Manager) Apply(domain, content string) error {
	if err := m.WriteSite(domain, content); err != nil {
		return errors.Wrap(errors.CodeWebServer, "write vhost", err)
	}
	if err := m.Enable(domain); err != nil {
		return errors.Wrap(errors.CodeWebServer, "enable vhost", err)
	}
	if err := m.RemoveDefault(); err != nil {
		return errors.Wrap(errors.CodeWebServer, "remove default site", err)
	}
	if err := m.Test(); err != nil {
		return errors.Wrap(errors.CodeWebServer, "config test", err)
	}
	if err := m.Reload(); err != nil {
		return errors.Wrap(errors.CodeWebServer, "reload", err)
	}
	return nil
}
