package cli

import (
	"bufio"
	"os"

	"github.com/furyashnyy/Npmginx/internal/config"
	"github.com/furyashnyy/Npmginx/internal/errors"
	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/ssl"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	Settings    SettingsLoader
	RootChecker RootChecker
	StdinReader StdinReader
	Executor    executor.CommandExecutor
	Certs       CertIssuer
}

// SettingsLoader loads the provisioning settings
type SettingsLoader interface {
	Load() (*config.Settings, error)
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// StdinReader reads from stdin
type StdinReader interface {
	ReadString(delim byte) (string, error)
}

// CertIssuer obtains TLS certificates
type CertIssuer interface {
	IsInstalled() bool
	Issue(domains []string, email string) (*ssl.Cert, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	Settings:    &realSettingsLoader{},
	RootChecker: &realRootChecker{},
	StdinReader: &realStdinReader{},
	Executor:    executor.NewSystemExecutor(),
	Certs:       &realCertIssuer{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to the underlying packages

type realSettingsLoader struct{}

func (r *realSettingsLoader) Load() (*config.Settings, error) {
	return config.Load()
}

type realRootChecker struct{}

func (r *realRootChecker) RequireRoot() error {
	if os.Geteuid() != 0 {
		return errors.ErrRootRequired
	}
	return nil
}

type realStdinReader struct {
	reader *bufio.Reader
}

func (r *realStdinReader) ReadString(delim byte) (string, error) {
	if r.reader == nil {
		r.reader = bufio.NewReader(os.Stdin)
	}
	return r.reader.ReadString(delim)
}

type realCertIssuer struct{}

func (r *realCertIssuer) IsInstalled() bool {
	return ssl.IsInstalled()
}

func (r *realCertIssuer) Issue(domains []string, email string) (*ssl.Cert, error) {
	return ssl.Issue(domains, email)
}
