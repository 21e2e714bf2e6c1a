// Package node checks the installed Node.js runtime and installs one
// from the NodeSource repository when the host version is missing or
// too old.
package node

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/furyashnyy/Npmginx/internal/errors"
	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/logger"
	"github.com/furyashnyy/Npmginx/internal/pkgmgr"
)

// Installer gates the Node.js runtime on a minimum major version
type Installer struct {
	exec     executor.CommandExecutor
	apt      *pkgmgr.Apt
	setupURL string
}

// New creates an Installer using the system executor
func New(setupURL string) *Installer {
	return NewWithExecutor(executor.NewSystemExecutor(), setupURL)
}

// NewWithExecutor creates an Installer with a custom executor (for testing)
func NewWithExecutor(exec executor.CommandExecutor, setupURL string) *Installer {
	return &Installer{
		exec:     exec,
		apt:      pkgmgr.NewWithExecutor(exec),
		setupURL: setupURL,
	}
}

// ParseMajor extracts the major version from a "vMAJOR.MINOR.PATCH"
// string as reported by node --version.
func ParseMajor(version string) (int, error) {
	v := strings.TrimSpace(version)
	v = strings.TrimPrefix(v, "v")
	if v == "" {
		return 0, fmt.Errorf("empty version string")
	}

	head, _, _ := strings.Cut(v, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("malformed version string %q", version)
	}
	return major, nil
}

// CurrentMajor returns the major version of the node binary on the
// PATH. A missing binary returns errors.ErrNodeNotInstalled.
func (i *Installer) CurrentMajor() (int, error) {
	if _, err := i.exec.LookPath("node"); err != nil {
		return 0, errors.ErrNodeNotInstalled
	}

	output, err := i.exec.Execute("node", "--version")
	if err != nil {
		return 0, errors.Wrap(errors.CodeRuntime, "node --version failed", err)
	}

	return ParseMajor(string(output))
}

// Ensure makes a Node.js runtime of at least minMajor available,
// installing from NodeSource when needed. It returns the major version
// that ended up on the PATH.
//
// A version string that cannot be parsed is treated the same as a
// missing runtime: the installer runs again. Failing closed here beats
// aborting the whole provisioning run over a cosmetic version banner.
func (i *Installer) Ensure(minMajor int) (int, error) {
	major, err := i.CurrentMajor()
	switch {
	case err == nil && major >= minMajor:
		logger.Debug("node v%d already satisfies minimum v%d", major, minMajor)
		return major, nil
	case err == nil:
		logger.Info("node v%d below minimum v%d, upgrading", major, minMajor)
	case errors.Is(err, errors.ErrNodeNotInstalled):
		logger.Info("node not installed")
	default:
		logger.Warn("could not determine node version (%v), reinstalling", err)
	}

	if err := i.install(); err != nil {
		return 0, err
	}

	major, err = i.CurrentMajor()
	if err != nil {
		return 0, errors.Wrap(errors.CodeRuntime, "node unavailable after install", err)
	}
	if major < minMajor {
		return major, errors.Wrap(errors.CodeRuntime,
			fmt.Sprintf("installed node v%d is below the required v%d", major, minMajor), nil)
	}
	return major, nil
}

// install runs the NodeSource bootstrap script and installs nodejs.
func (i *Installer) install() error {
	logger.Debug("fetching NodeSource bootstrap from %s", i.setupURL)
	script, err := i.exec.Execute("curl", "-fsSL", i.setupURL)
	if err != nil {
		return errors.Wrap(errors.CodeRuntime, "failed to download NodeSource setup script", err)
	}

	if err := i.exec.ExecuteInput(string(script), "bash", "-"); err != nil {
		return errors.Wrap(errors.CodeRuntime, "NodeSource setup script failed", err)
	}

	if err := i.apt.Install("nodejs"); err != nil {
		return errors.Wrap(errors.CodeRuntime, "failed to install nodejs", err)
	}
	return nil
}
