// Package instructions writes the operator instruction document that
// closes a provisioning run.
package instructions

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/furyashnyy/Npmginx/internal/config"
	"github.com/furyashnyy/Npmginx/internal/logger"
	"github.com/furyashnyy/Npmginx/internal/ssl"
)

//go:embed instructions.tmpl
var tmplFS embed.FS

// Data feeds the instruction template
type Data struct {
	Domain            string
	WWWDomain         string
	WebRoot           string
	Upstream          string
	VHostPath         string
	NodeMajor         int
	CertIssued        bool
	ManualCertCommand string
}

// NewData builds template data from the settings and run results
func NewData(s *config.Settings, nodeMajor int, certIssued bool) Data {
	return Data{
		Domain:            s.Domain,
		WWWDomain:         s.WWWDomain(),
		WebRoot:           s.WebRoot,
		Upstream:          s.Upstream,
		VHostPath:         s.SitePath(),
		NodeMajor:         nodeMajor,
		CertIssued:        certIssued,
		ManualCertCommand: ssl.ManualCommand(s.Hostnames()),
	}
}

// Render produces the instruction document text
func Render(data Data) (string, error) {
	content, err := tmplFS.ReadFile("instructions.tmpl")
	if err != nil {
		return "", fmt.Errorf("template not found: %w", err)
	}

	tmpl, err := template.New("instructions").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render instructions: %w", err)
	}
	return buf.String(), nil
}

// Write renders the document and writes it to path with restrictive
// permissions. An existing file is always replaced.
func Write(path string, data Data) error {
	content, err := Render(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write instructions: %w", err)
	}
	logger.Debug("wrote operator instructions to %s", path)
	return nil
}
