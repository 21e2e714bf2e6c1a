package executor

import (
	"os"
	"os/exec"
	"strings"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command and returns its combined output
	Execute(name string, args ...string) ([]byte, error)

	// ExecuteStreamEnv runs a command with extra KEY=VALUE entries
	// appended to the current environment and stdout/stderr connected
	// to the current process so long installs show live progress
	ExecuteStreamEnv(env []string, name string, args ...string) error

	// ExecuteInput runs a command feeding input to its stdin and
	// streaming stdout/stderr to the current process
	ExecuteInput(input string, name string, args ...string) error

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// ExecuteStreamEnv runs a command with extra environment entries,
// streaming its output to the terminal
func (e *SystemExecutor) ExecuteStreamEnv(env []string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ExecuteInput runs a command feeding input to stdin
func (e *SystemExecutor) ExecuteInput(input string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc       func(name string, args ...string) ([]byte, error)
	ExecuteStreamFunc func(name string, args ...string) error
	ExecuteInputFunc  func(input string, name string, args ...string) error
	LookPathFunc      func(file string) (string, error)
	Calls             []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name  string
	Args  []string
	Env   []string
	Input string
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// ExecuteStreamEnv calls the mock function, recording the extra environment
func (m *MockExecutor) ExecuteStreamEnv(env []string, name string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args, Env: env})
	if m.ExecuteStreamFunc != nil {
		return m.ExecuteStreamFunc(name, args...)
	}
	if m.ExecuteFunc != nil {
		_, err := m.ExecuteFunc(name, args...)
		return err
	}
	return nil
}

// ExecuteInput calls the mock function
func (m *MockExecutor) ExecuteInput(input string, name string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args, Input: input})
	if m.ExecuteInputFunc != nil {
		return m.ExecuteInputFunc(input, name, args...)
	}
	return nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// CalledWith reports whether any recorded call matches the command
// name and leading arguments
func (m *MockExecutor) CalledWith(name string, args ...string) bool {
	for _, call := range m.Calls {
		if call.Name != name || len(call.Args) < len(args) {
			continue
		}
		match := true
		for i, a := range args {
			if call.Args[i] != a {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
