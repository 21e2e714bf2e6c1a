package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/furyashnyy/Npmginx/internal/errors"
)

// Settings holds everything the provisioner needs to set up the one
// site this tool manages. Values are fixed in Default; the optional
// settings file exists so the paths can be redirected on non-standard
// layouts, not to make the tool multi-site.
type Settings struct {
	Domain         string `yaml:"domain"`
	WebRoot        string `yaml:"web_root"`
	WebUser        string `yaml:"web_user"`
	Upstream       string `yaml:"upstream"`
	NodeMinMajor   int    `yaml:"node_min_major"`
	NodeSetupURL   string `yaml:"node_setup_url"`
	SitesAvailable string `yaml:"sites_available"`
	SitesEnabled   string `yaml:"sites_enabled"`
	Instructions   string `yaml:"instructions"`
}

// settingsPath is the optional override file.
const settingsPath = "/etc/npmginx.yaml"

// emailEnvVar supplies the Let's Encrypt notification address.
const emailEnvVar = "CERTBOT_EMAIL"

// Default returns the built-in settings for the managed site.
func Default() *Settings {
	return &Settings{
		Domain:         "example.com",
		WebRoot:        "/var/www/example.com",
		WebUser:        "www-data",
		Upstream:       "http://127.0.0.1:3000",
		NodeMinMajor:   18,
		NodeSetupURL:   "https://deb.nodesource.com/setup_20.x",
		SitesAvailable: "/etc/nginx/sites-available",
		SitesEnabled:   "/etc/nginx/sites-enabled",
		Instructions:   "/root/SERVER_INSTRUCTIONS.txt",
	}
}

// Load returns the defaults, overlaid with the settings file when one
// exists on disk.
func Load() (*Settings, error) {
	return LoadFrom(settingsPath)
}

// LoadFrom reads settings from the given path, falling back to the
// defaults when the file does not exist.
func LoadFrom(path string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "failed to read settings", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "failed to parse settings", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings for values the pipeline cannot work with.
func (s *Settings) Validate() error {
	if s.Domain == "" {
		return errors.Validation("domain cannot be empty")
	}
	if strings.Contains(s.Domain, " ") {
		return errors.Validation("domain cannot contain spaces")
	}
	if strings.HasPrefix(s.Domain, "www.") {
		return errors.Validation("domain must be the bare hostname, the www alias is added automatically")
	}
	if !filepath.IsAbs(s.WebRoot) {
		return errors.Validation(fmt.Sprintf("web root must be absolute: %s", s.WebRoot))
	}
	if s.NodeMinMajor < 1 {
		return errors.Validation("node_min_major must be positive")
	}

	upstream := s.Upstream
	if !strings.Contains(upstream, "://") {
		upstream = "http://" + upstream
	}
	if _, err := url.Parse(upstream); err != nil {
		return errors.Wrap(errors.CodeConfig, "invalid upstream", err)
	}

	return nil
}

// WWWDomain returns the www alias for the managed domain.
func (s *Settings) WWWDomain() string {
	return "www." + s.Domain
}

// Hostnames returns both hostnames the vhost and certificate cover.
func (s *Settings) Hostnames() []string {
	return []string{s.Domain, s.WWWDomain()}
}

// SitePath returns the sites-available path for the vhost config.
func (s *Settings) SitePath() string {
	return filepath.Join(s.SitesAvailable, s.Domain)
}

// SiteLink returns the sites-enabled symlink path for the vhost config.
func (s *Settings) SiteLink() string {
	return filepath.Join(s.SitesEnabled, s.Domain)
}

// EmailFromEnv returns the certificate notification address from the
// environment. An optional .env file in the working directory is
// loaded first; a missing file is not an error.
func EmailFromEnv() string {
	_ = godotenv.Load()
	return strings.TrimSpace(os.Getenv(emailEnvVar))
}
