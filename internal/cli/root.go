package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantryctl/internal/config"
	"pantryctl/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

var envFile string

var rootCmd = &cobra.Command{
	Use:   "pantryctl",
	Short: "Browse the package catalog and drive the local installer",
	Long: `pantryctl is the backend shim for the desktop package manager: it fetches
catalog data (packages, reviews, posts, bottles) from the catalog API and
drives the local installer executable.

Examples:
	# Show available commands and global flags
	pantryctl --help

	# Install a package
	pantryctl install pantry/foo

	# Show a package with its bottles and reviews
	pantryctl info pantry/foo

	# Print build info
	pantryctl version

Output:
	By default, commands write human-readable output to stdout.
	Use --format json for machine-readable output.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every catalog API call and installer output)")
	rootCmd.PersistentFlags().StringVar(&cfg.Output.Format, flags.FlagFormat, "text", "Console output format: text|json (default: text)")
	rootCmd.PersistentFlags().StringVar(&cfg.Catalog.BaseURL, flags.FlagAPIURL, "", "Catalog API base URL (default: production; also PANTRY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Catalog.Token, flags.FlagToken, "", "Explicit bearer token for the catalog API (also PANTRY_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 30m)")
	rootCmd.PersistentFlags().StringVar(&envFile, flags.FlagEnvFile, "", "Path to a .env file with PANTRY_* overrides (default: ./.env if present)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// loadConfig applies env overrides and validates. Called at the top of every
// command Run.
func loadConfig() error {
	if err := cfg.LoadEnv(envFile); err != nil {
		return err
	}
	return cfg.Validate()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
