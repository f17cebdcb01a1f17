package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/output"
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show a package with its bottles and reviews",
	Long: `Show a catalog package: metadata, available bottles (prebuilt binaries)
and user reviews. The three are fetched concurrently.

Examples:
  pantryctl info pantry/foo
  pantryctl info pantry/foo --format json
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)
		defer cancel()

		f, err := newFetcher(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		name := args[0]
		results, err := f.FetchMany(ctx, name, []data.DependencyRequest{
			{Key: data.DepPackageDetails},
			{Key: data.DepPackageBottles},
			{Key: data.DepPackageReviews},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var info output.PackageInfo
		var ok bool
		if info.Details, ok = results[data.DepPackageDetails].(*models.Package); !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected type %T for %s\n", results[data.DepPackageDetails], data.DepPackageDetails)
			os.Exit(1)
		}
		if info.Bottles, ok = results[data.DepPackageBottles].([]models.Bottle); !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected type %T for %s\n", results[data.DepPackageBottles], data.DepPackageBottles)
			os.Exit(1)
		}
		if info.Reviews, ok = results[data.DepPackageReviews].([]models.Review); !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected type %T for %s\n", results[data.DepPackageReviews], data.DepPackageReviews)
			os.Exit(1)
		}

		sink, err := newConsoleSink()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if err := sink.Write(info); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
