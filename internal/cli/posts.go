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

var postsTag string

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List blog and guide posts from the catalog",
	Long: `List blog and guide posts published by the catalog.

Examples:
  pantryctl posts
  pantryctl posts --tag guides
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

		var params map[string]string
		if postsTag != "" {
			params = map[string]string{"tag": postsTag}
		}
		val, err := f.Fetch(ctx, "", data.DepPosts, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		posts, ok := val.([]models.Post)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected type %T for %s\n", val, data.DepPosts)
			os.Exit(1)
		}

		sink, err := newConsoleSink()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if err := sink.Write(posts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)

	postsCmd.Flags().StringVar(&postsTag, flags.FlagTag, "", "Only posts carrying this tag (exact match)")
}
