package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v81/github"
	"github.com/spf13/cobra"

	"pantryctl/internal/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, date := BuildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "pantryctl %s\ncommit: %s\nbuilt:  %s\n", version, commit, date)

		// Best-effort release check; stay quiet on any failure.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result, err := update.Check(ctx, github.NewClient(nil), version)
		if err != nil {
			return
		}
		if result.Outdated {
			fmt.Fprintf(cmd.OutOrStdout(), "\nA newer release is available: %s (current: %s)\n", result.Latest, result.Current)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
