package cli

import (
	"strings"

	"github.com/furyashnyy/Npmginx/internal/config"
	"github.com/furyashnyy/Npmginx/internal/errors"
	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/ssl"
)

// MockSettingsLoader is a test double for SettingsLoader
type MockSettingsLoader struct {
	Cfg     *config.Settings
	LoadErr error
}

func (m *MockSettingsLoader) Load() (*config.Settings, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.Default()
	}
	return m.Cfg, nil
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return errors.ErrRootRequired
	}
	return nil
}

// MockStdinReader is a test double for StdinReader
type MockStdinReader struct {
	Input string
	pos   int
}

func (m *MockStdinReader) ReadString(delim byte) (string, error) {
	if m.pos >= len(m.Input) {
		return "", errors.Wrap(errors.CodeInternal, "EOF", nil)
	}
	idx := strings.IndexByte(m.Input[m.pos:], delim)
	if idx == -1 {
		result := m.Input[m.pos:]
		m.pos = len(m.Input)
		return result, nil
	}
	result := m.Input[m.pos : m.pos+idx+1]
	m.pos += idx + 1
	return result, nil
}

// MockCertIssuer is a test double for CertIssuer
type MockCertIssuer struct {
	Installed  bool
	IssueErr   error
	IssueCalls [][]string
}

func (m *MockCertIssuer) IsInstalled() bool {
	return m.Installed
}

func (m *MockCertIssuer) Issue(domains []string, email string) (*ssl.Cert, error) {
	m.IssueCalls = append(m.IssueCalls, append([]string{email}, domains...))
	if m.IssueErr != nil {
		return nil, m.IssueErr
	}
	return &ssl.Cert{
		Domain:   domains[0],
		CertPath: "/etc/letsencrypt/live/" + domains[0] + "/fullchain.pem",
		KeyPath:  "/etc/letsencrypt/live/" + domains[0] + "/privkey.pem",
	}, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			Settings:    &MockSettingsLoader{Cfg: config.Default()},
			RootChecker: &MockRootChecker{IsRoot: true},
			StdinReader: &MockStdinReader{},
			Executor:    &executor.MockExecutor{},
			Certs:       &MockCertIssuer{Installed: true},
		},
	}
}

// WithSettings sets the settings for the mock
func (b *MockDependenciesBuilder) WithSettings(cfg *config.Settings) *MockDependenciesBuilder {
	b.deps.Settings = &MockSettingsLoader{Cfg: cfg}
	return b
}

// WithRootChecker sets a custom root checker
func (b *MockDependenciesBuilder) WithRootChecker(rc RootChecker) *MockDependenciesBuilder {
	b.deps.RootChecker = rc
	return b
}

// WithExecutor sets a custom executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithStdin sets the stdin content
func (b *MockDependenciesBuilder) WithStdin(inpt string) *MockDependenciesBuilder {
	b.deps.StdinReader = &MockStdinReader{Input: inpt}
	return b
}

// WithCerts sets a custom certificate issuer
func (b *MockDependenciesBuilder) WithCerts(c CertIssuer) *MockDependenciesBuilder {
	b.deps.Certs = c
	return b
}

// Build returns the dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
