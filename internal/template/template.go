// Package template renders the nginx virtual-host configuration for
// the managed site from an embedded template.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/furyashnyy/Npmginx/internal/config"
)

//go:embed nginx/*.tmpl
var nginxTemplates embed.FS

// VHostData contains data for rendering the vhost template
type VHostData struct {
	Domain    string
	WWWDomain string
	Root      string
	Upstream  string
}

// RenderVHost renders the reverse-proxy vhost config for the settings
func RenderVHost(s *config.Settings) (string, error) {
	content, err := nginxTemplates.ReadFile("nginx/proxy.tmpl")
	if err != nil {
		return "", fmt.Errorf("template not found: %w", err)
	}

	tmpl, err := template.New("proxy").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := VHostData{
		Domain:    s.Domain,
		WWWDomain: s.WWWDomain(),
		Root:      s.WebRoot,
		Upstream:  s.Upstream,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
