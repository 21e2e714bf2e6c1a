package ssl

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/furyashnyy/Npmginx/internal/errors"
	"github.com/furyashnyy/Npmginx/internal/executor"
)

// Cert represents an issued certificate
type Cert struct {
	Domain   string
	CertPath string
	KeyPath  string
}

// letsencryptDir is the base directory for Let's Encrypt certificates
const letsencryptDir = "/etc/letsencrypt/live"

// cmdExecutor is the command executor (can be replaced for testing)
var cmdExecutor executor.CommandExecutor = executor.NewSystemExecutor()

// SetExecutor allows tests to inject a mock executor
func SetExecutor(exec executor.CommandExecutor) {
	cmdExecutor = exec
}

// ResetExecutor resets the executor to the default system executor
func ResetExecutor() {
	cmdExecutor = executor.NewSystemExecutor()
}

// IsInstalled checks if certbot is installed
func IsInstalled() bool {
	_, err := cmdExecutor.LookPath("certbot")
	return err == nil
}

// issueArgs builds the non-interactive certbot invocation for the
// given hostnames. The certificate is installed into the nginx config
// but no HTTP to HTTPS redirect is forced; the operator decides that.
func issueArgs(domains []string, email string) []string {
	args := []string{"--nginx"}
	for _, d := range domains {
		args = append(args, "-d", d)
	}
	return append(args,
		"--email", email,
		"--agree-tos",
		"--non-interactive",
		"--no-redirect",
	)
}

// Issue obtains and installs a certificate covering all the given
// hostnames using the certbot nginx plugin.
func Issue(domains []string, email string) (*Cert, error) {
	if !IsInstalled() {
		return nil, errors.ErrCertbotNotInstalled
	}
	if len(domains) == 0 {
		return nil, errors.Wrap(errors.CodeSSL, "no hostnames to certify", nil)
	}

	output, err := cmdExecutor.Execute("certbot", issueArgs(domains, email)...)
	if err != nil {
		return nil, errors.Wrap(errors.CodeSSL, fmt.Sprintf("certbot failed: %s", string(output)), err)
	}

	// Certbot names the lineage after the first -d hostname
	return &Cert{
		Domain:   domains[0],
		CertPath: filepath.Join(letsencryptDir, domains[0], "fullchain.pem"),
		KeyPath:  filepath.Join(letsencryptDir, domains[0], "privkey.pem"),
	}, nil
}

// ManualCommand returns the certbot invocation an operator can run by
// hand when automatic issuance was skipped or failed.
func ManualCommand(domains []string) string {
	parts := []string{"certbot", "--nginx"}
	for _, d := range domains {
		parts = append(parts, "-d", d)
	}
	return strings.Join(parts, " ")
}
