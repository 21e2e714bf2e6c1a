// Package webroot creates the document root for the managed site and
// seeds it with a placeholder page.
package webroot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/furyashnyy/Npmginx/internal/executor"
	"github.com/furyashnyy/Npmginx/internal/logger"
)

const placeholderTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>%s</title>
</head>
<body>
    <h1>%s</h1>
    <p>The server is provisioned. Deploy your application and start the dev server to replace this page.</p>
</body>
</html>
`

// Manager creates and owns the document root
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

// Ensure creates the document root with the given owner and writes the
// placeholder index.html only when none exists. Re-runs never clobber
// a page that is already there. It reports whether the placeholder was
// written on this run.
func (m *Manager) Ensure(root, domain, owner string) (bool, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return false, fmt.Errorf("failed to create web root: %w", err)
	}

	created := false
	index := filepath.Join(root, "index.html")
	if _, err := os.Stat(index); os.IsNotExist(err) {
		content := fmt.Sprintf(placeholderTemplate, domain, domain)
		if err := os.WriteFile(index, []byte(content), 0644); err != nil {
			return false, fmt.Errorf("failed to write placeholder page: %w", err)
		}
		created = true
		logger.Debug("wrote placeholder page to %s", index)
	} else if err != nil {
		return false, fmt.Errorf("failed to check placeholder page: %w", err)
	}

	// Ownership goes through chown so the user:group spelling works
	// without resolving uid/gid locally
	if owner != "" {
		ownerSpec := owner + ":" + owner
		if output, err := m.exec.Execute("chown", "-R", ownerSpec, root); err != nil {
			return created, fmt.Errorf("failed to chown web root: %s", string(output))
		}
	}

	return created, nil
}
