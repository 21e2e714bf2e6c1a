package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/furyashnyy/Npmginx/internal/config"
	"github.com/furyashnyy/Npmginx/internal/errors"
	"github.com/furyashnyy/Npmginx/internal/input"
	"github.com/furyashnyy/Npmginx/internal/instructions"
	"github.com/furyashnyy/Npmginx/internal/nginx"
	"github.com/furyashnyy/Npmginx/internal/node"
	"github.com/furyashnyy/Npmginx/internal/output"
	"github.com/furyashnyy/Npmginx/internal/pkgmgr"
	"github.com/furyashnyy/Npmginx/internal/service"
	"github.com/furyashnyy/Npmginx/internal/ssl"
	"github.com/furyashnyy/Npmginx/internal/template"
	"github.com/furyashnyy/Npmginx/internal/webroot"
)

// basePackages are installed on every run; apt makes this cheap when
// they are already present.
var basePackages = []string{"nginx", "certbot", "python3-certbot-nginx", "curl"}

const totalSteps = 7

func runProvision(cmd *cobra.Command, args []string) error {
	settings, err := deps.Settings.Load()
	if err != nil {
		return err
	}

	if dryRun {
		return printPlan(settings)
	}

	// Privilege check happens before any side effect
	if err := deps.RootChecker.RequireRoot(); err != nil {
		return err
	}

	exec := deps.Executor
	apt := pkgmgr.NewWithExecutor(exec)
	svc := service.NewWithExecutor(exec)

	output.Step(1, totalSteps, "Installing packages")
	if err := apt.Update(); err != nil {
		return errors.Step(errors.CodePackage, "update package index", err)
	}
	if missing := apt.Missing(basePackages...); len(missing) == 0 {
		output.Info("All packages already installed")
	} else if err := apt.Install(missing...); err != nil {
		return errors.Step(errors.CodePackage, "install packages", err)
	}

	output.Step(2, totalSteps, "Enabling nginx service")
	if err := svc.Enable("nginx"); err != nil {
		return errors.Step(errors.CodeService, "enable nginx", err)
	}
	if err := svc.Restart("nginx"); err != nil {
		return errors.Step(errors.CodeService, "restart nginx", err)
	}

	output.Step(3, totalSteps, "Checking Node.js runtime (minimum v%d)", settings.NodeMinMajor)
	nodeMajor, err := node.NewWithExecutor(exec, settings.NodeSetupURL).Ensure(settings.NodeMinMajor)
	if err != nil {
		return errors.Step(errors.CodeRuntime, "ensure Node.js runtime", err)
	}
	output.Info("Node.js v%d available", nodeMajor)

	output.Step(4, totalSteps, "Preparing web root %s", settings.WebRoot)
	created, err := webroot.NewWithExecutor(exec).Ensure(settings.WebRoot, settings.Domain, settings.WebUser)
	if err != nil {
		return errors.Step(errors.CodeInternal, "prepare web root", err)
	}
	if created {
		output.Info("Placeholder page written")
	} else {
		output.Info("Existing page left untouched")
	}

	output.Step(5, totalSteps, "Configuring nginx vhost for %s", settings.Domain)
	content, err := template.RenderVHost(settings)
	if err != nil {
		return errors.Step(errors.CodeWebServer, "render vhost config", err)
	}
	web := nginx.NewWithExecutor(settings.SitesAvailable, settings.SitesEnabled, exec)
	if enabled, err := web.IsEnabled(settings.Domain); err == nil && enabled {
		output.Info("Vhost already enabled, refreshing config")
	}
	if err := web.Apply(settings.Domain, content); err != nil {
		return errors.Step(errors.CodeWebServer, "apply vhost config", err)
	}

	output.Step(6, totalSteps, "Requesting TLS certificate")
	certIssued := requestCertificate(settings)

	output.Step(7, totalSteps, "Writing operator instructions")
	data := instructions.NewData(settings, nodeMajor, certIssued)
	if err := instructions.Write(settings.Instructions, data); err != nil {
		return errors.Step(errors.CodeInternal, "write instructions", err)
	}

	printSummary(settings, svc, nodeMajor, certIssued)
	return nil
}

// requestCertificate runs the only failure-tolerant step of the
// pipeline. Missing email or a certbot failure degrade to a warning;
// the run still succeeds.
func requestCertificate(settings *config.Settings) bool {
	email := resolveEmail()
	if email == "" {
		output.Warn("No email provided, skipping certificate request")
		output.Warn("Run manually later: %s", ssl.ManualCommand(settings.Hostnames()))
		return false
	}

	if !deps.Certs.IsInstalled() {
		output.Warn("certbot is not installed, skipping certificate request")
		return false
	}

	output.Info("Requesting certificate for %s and %s", settings.Domain, settings.WWWDomain())
	cert, err := deps.Certs.Issue(settings.Hostnames(), email)
	if err != nil {
		output.Warn("Certificate request failed: %v", err)
		output.Warn("Run manually once DNS resolves: %s", ssl.ManualCommand(settings.Hostnames()))
		return false
	}

	output.Success("Certificate installed: %s", cert.CertPath)
	return true
}

// resolveEmail looks for the notification address in the --email flag,
// then the environment, then an interactive prompt. Empty means skip.
func resolveEmail() string {
	if emailFlag != "" {
		return emailFlag
	}
	if email := config.EmailFromEnv(); email != "" {
		return email
	}

	email, err := input.PromptLine(deps.StdinReader,
		"Email for Let's Encrypt notifications (leave empty to skip): ")
	if err != nil {
		return ""
	}
	return email
}

func printPlan(settings *config.Settings) error {
	content, err := template.RenderVHost(settings)
	if err != nil {
		return errors.Step(errors.CodeWebServer, "render vhost config", err)
	}

	output.Info("Dry run, nothing will be changed")
	output.Print("")
	output.Print("Would install packages: %v", basePackages)
	output.Print("Would enable and restart nginx")
	output.Print("Would ensure Node.js >= v%d (bootstrap: %s)", settings.NodeMinMajor, settings.NodeSetupURL)
	output.Print("Would create web root %s (owner %s)", settings.WebRoot, settings.WebUser)
	output.Print("Would write vhost to %s and enable it:", settings.SitePath())
	output.Print("")
	output.Print("%s", content)
	output.Print("Would request a certificate for %s", settings.Hostnames())
	output.Print("Would write instructions to %s", settings.Instructions)
	return nil
}

func printSummary(settings *config.Settings, svc *service.Manager, nodeMajor int, certIssued bool) {
	cert := "skipped"
	if certIssued {
		cert = "installed"
	}
	state := "not running"
	if svc.IsActive("nginx") {
		state = "active"
	}
	output.Summary("Provisioning complete", [][2]string{
		{"Domain", fmt.Sprintf("%s, %s", settings.Domain, settings.WWWDomain())},
		{"Web root", settings.WebRoot},
		{"Upstream", settings.Upstream},
		{"nginx", state},
		{"Node.js", "v" + strconv.Itoa(nodeMajor)},
		{"Certificate", cert},
		{"Instructions", settings.Instructions},
	})
	output.Print("")
	output.Success("Host is ready, start your dev server on %s", settings.Upstream)
}
