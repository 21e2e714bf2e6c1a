package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/furyashnyy/Npmginx/internal/logger"
)

var (
	verbose   bool
	dryRun    bool
	emailFlag string
	version   = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "npmginx",
	Short: "Provision a Node.js web host behind nginx",
	Long: `npmginx provisions a single Debian/Ubuntu host for a Node.js
application: it installs nginx and certbot, makes sure a recent
Node.js runtime is present, creates the web root, activates a
reverse-proxy virtual host for the site and its www alias, requests a
Let's Encrypt certificate, and leaves an instruction file for the
operator.

The run is sequential and fail-fast; only the certificate step is
allowed to fail without aborting. Must be run as root.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runProvision,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "Email for Let's Encrypt notifications (overrides CERTBOT_EMAIL)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without touching the host")
}
