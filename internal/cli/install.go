package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pantryctl/internal/flags"
	"pantryctl/internal/installer"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a package via the local installer",
	Long: `Install a package via the local installer executable.

The package is addressed by its fully-qualified name (namespace/name). The
installer is spawned with that name and watched until it reports success
(an "installed:" output line or exit code 0) or failure (exit code 1).

Exit codes:
	0 = installed
	1 = install failed
	3 = fatal error (install did not run)

Examples:
  pantryctl install pantry/foo

  # Use a specific installer binary and a tighter bound
  pantryctl install pantry/foo --installer /usr/local/bin/pantry --install-timeout 5m
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		// An explicit flag wins over PANTRY_INSTALL_TIMEOUT.
		if cmd.Flags().Changed(flags.FlagInstallTimeout) {
			if installTimeout <= 0 {
				fmt.Fprintf(os.Stderr, "Error: --%s must be > 0\n", flags.FlagInstallTimeout)
				os.Exit(3)
			}
			cfg.Installer.Timeout = installTimeout
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)
		defer cancel()
		// The per-install bound nests inside the global one; the earlier
		// deadline wins.
		installCtx, cancelInstall := context.WithTimeout(ctx, cfg.Installer.Timeout)
		defer cancelInstall()

		inv := installer.Invoker{
			Command: cfg.Installer.Command,
		}
		if cfg.Runtime.Verbose {
			inv.Log = os.Stderr
		}

		name := args[0]
		result, err := inv.Install(installCtx, name)
		if err != nil {
			if errors.Is(err, installer.ErrInstallFailed) {
				color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s: install failed\n", name)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
		color.New(color.FgGreen).Printf("✓ installed %s", name)
		fmt.Printf(" (installer pid %d)\n", result.PID)
	},
}

var installTimeout time.Duration

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&cfg.Installer.Command, flags.FlagInstaller, "", "Installer executable (default: pantry on PATH; also PANTRY_INSTALLER)")
	installCmd.Flags().DurationVar(&installTimeout, flags.FlagInstallTimeout, cfg.Installer.Timeout, "Per-install timeout (default: 15m)")
}
