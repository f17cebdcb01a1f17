package cli

import (
	"context"
	"fmt"

	"pantryctl/internal/catalog"
	"pantryctl/internal/fetcher"
	"pantryctl/internal/output"
	"pantryctl/internal/session"
)

// newFetcher wires the catalog client (session signing, optional explicit
// token, verbose logging) and a fresh request budget.
func newFetcher(ctx context.Context) (*fetcher.Fetcher, error) {
	store, err := session.NewFileStore("")
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{
		catalog.WithVerbose(cfg.Runtime.Verbose, nil),
		catalog.WithSessions(store),
	}
	if cfg.Catalog.Token != "" {
		opts = append(opts, catalog.WithBearerToken(cfg.Catalog.Token))
	}

	client, err := catalog.NewClient(ctx, cfg.Catalog.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	return fetcher.NewFetcher(client, fetcher.NewRequestBudget()), nil
}

func newConsoleSink() (*output.ConsoleSink, error) {
	return output.NewConsoleSink(nil, cfg.Output.Format)
}
