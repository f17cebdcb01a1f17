package providers

import (
	"context"
	"fmt"
	"strings"

	"pantryctl/internal/catalog"
	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/fetcher"
)

type packageBottlesFetcher struct{}

func (p *packageBottlesFetcher) Key() data.DependencyKey {
	return data.DepPackageBottles
}

func (p *packageBottlesFetcher) Scope() data.FetchScope {
	return data.ScopePackage
}

func (p *packageBottlesFetcher) Fetch(ctx context.Context, pkg string, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	name := strings.TrimSpace(pkg)
	if name == "" {
		return nil, fmt.Errorf("%s: package name is required", data.DepPackageBottles)
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var bottles []models.Bottle
	resp, err := f.Client().GetJSON(ctx, "v1/packages/"+name+"/bottles", &bottles)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		// Source-only packages have no bottles; that is not an error.
		if catalog.IsNotFound(err) {
			return []models.Bottle(nil), nil
		}
		return nil, err
	}
	return bottles, nil
}

func init() {
	fetcher.RegisterDataFetcher(&packageBottlesFetcher{})
}
