package providers

import (
	"context"

	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/fetcher"
)

type packageIndexFetcher struct{}

func (p *packageIndexFetcher) Key() data.DependencyKey {
	return data.DepPackageIndex
}

func (p *packageIndexFetcher) Scope() data.FetchScope {
	return data.ScopeGlobal
}

func (p *packageIndexFetcher) Fetch(ctx context.Context, _ string, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var packages []models.Package
	resp, err := f.Client().GetJSON(ctx, "v1/packages", &packages)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func init() {
	fetcher.RegisterDataFetcher(&packageIndexFetcher{})
}
