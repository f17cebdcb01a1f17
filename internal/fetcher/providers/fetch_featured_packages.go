package providers

import (
	"context"

	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/fetcher"
)

type featuredPackagesFetcher struct{}

func (p *featuredPackagesFetcher) Key() data.DependencyKey {
	return data.DepFeaturedPackages
}

func (p *featuredPackagesFetcher) Scope() data.FetchScope {
	return data.ScopeGlobal
}

func (p *featuredPackagesFetcher) Fetch(ctx context.Context, _ string, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var packages []models.Package
	resp, err := f.Client().GetJSON(ctx, "v1/packages/featured", &packages)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func init() {
	fetcher.RegisterDataFetcher(&featuredPackagesFetcher{})
}
