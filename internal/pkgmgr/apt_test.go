package pkgmgr

import (
	"errors"
	"testing"

	"github.com/furyashnyy/Npmginx/internal/executor"
)

func TestUpdate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		apt := NewWithExecutor(mock)

		if err := apt.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !mock.CalledWith("apt-get", "update") {
			t.Errorf("apt-get update not invoked: %v", mock.Calls)
		}
		if len(mock.Calls[0].Env) == 0 || mock.Calls[0].Env[0] != "DEBIAN_FRONTEND=noninteractive" {
			t.Errorf("noninteractive frontend not set: %v", mock.Calls[0].Env)
		}
	})

	t.Run("failure wraps the exit error", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteStreamFunc: func(name string, args ...string) error {
				return errors.New("exit status 100")
			},
		}
		apt := NewWithExecutor(mock)

		err := apt.Update()
		if err == nil {
			t.Fatal("expected error")
		}
		if got := err.Error(); got != "apt-get update failed: exit status 100" {
			t.Errorf("unexpected error message: %q", got)
		}
	})

	t.Run("output streams to the terminal", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		apt := NewWithExecutor(mock)

		if err := apt.Update(); err != nil {
			t.Fatal(err)
		}
		// Only the streaming variant records the injected environment
		if len(mock.Calls) != 1 || mock.Calls[0].Env == nil {
			t.Errorf("expected the streaming env-aware variant: %+v", mock.Calls)
		}
	})
}

func TestInstall(t *testing.T) {
	t.Run("passes all packages", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		apt := NewWithExecutor(mock)

		if err := apt.Install("nginx", "certbot", "python3-certbot-nginx"); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if !mock.CalledWith("apt-get", "install", "-y", "-q", "nginx", "certbot", "python3-certbot-nginx") {
			t.Errorf("unexpected install invocation: %v", mock.Calls)
		}
	})

	t.Run("no packages is a no-op", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		apt := NewWithExecutor(mock)

		if err := apt.Install(); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if len(mock.Calls) != 0 {
			t.Errorf("expected no executor calls, got %v", mock.Calls)
		}
	})

	t.Run("failure", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteStreamFunc: func(name string, args ...string) error {
				return errors.New("exit status 100")
			},
		}
		apt := NewWithExecutor(mock)

		if err := apt.Install("foo"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestMissing(t *testing.T) {
	t.Run("filters installed packages", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				if args[1] == "nginx" || args[1] == "curl" {
					return []byte("Status: install ok installed"), nil
				}
				return nil, errors.New("package not found")
			},
		}
		apt := NewWithExecutor(mock)

		missing := apt.Missing("nginx", "certbot", "python3-certbot-nginx", "curl")
		if len(missing) != 2 || missing[0] != "certbot" || missing[1] != "python3-certbot-nginx" {
			t.Errorf("unexpected missing set: %v", missing)
		}
	})

	t.Run("all installed", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		apt := NewWithExecutor(mock)

		if missing := apt.Missing("nginx", "curl"); missing != nil {
			t.Errorf("expected no missing packages, got %v", missing)
		}
	})
}

func TestIsInstalled(t *testing.T) {
	t.Run("installed", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		apt := NewWithExecutor(mock)

		if !apt.IsInstalled("nginx") {
			t.Error("expected IsInstalled true")
		}
		if !mock.CalledWith("dpkg", "-s", "nginx") {
			t.Errorf("dpkg not queried: %v", mock.Calls)
		}
	})

	t.Run("not installed", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return nil, errors.New("package not found")
			},
		}
		apt := NewWithExecutor(mock)

		if apt.IsInstalled("nginx") {
			t.Error("expected IsInstalled false")
		}
	})
}
