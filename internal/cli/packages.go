package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/flags"
)

var packagesFeatured bool

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List catalog packages",
	Long: `List catalog packages.

Examples:
  pantryctl packages
  pantryctl packages --featured
  pantryctl packages --format json
`,
	Args: cobra.NoArgs,
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

		key := data.DepPackageIndex
		if packagesFeatured {
			key = data.DepFeaturedPackages
		}
		val, err := f.Fetch(ctx, "", key, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		packages, ok := val.([]models.Package)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected type %T for %s\n", val, key)
			os.Exit(1)
		}

		sink, err := newConsoleSink()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if err := sink.Write(packages); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(packagesCmd)

	packagesCmd.Flags().BoolVar(&packagesFeatured, flags.FlagFeatured, false, "Only list the catalog's featured packages")
}
