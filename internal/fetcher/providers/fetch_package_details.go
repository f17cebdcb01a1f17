package providers

import (
	"context"
	"fmt"
	"strings"

	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/fetcher"
)

type packageDetailsFetcher struct{}

func (p *packageDetailsFetcher) Key() data.DependencyKey {
	return data.DepPackageDetails
}

func (p *packageDetailsFetcher) Scope() data.FetchScope {
	return data.ScopePackage
}

func (p *packageDetailsFetcher) Fetch(ctx context.Context, pkg string, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	name := strings.TrimSpace(pkg)
	if name == "" {
		return nil, fmt.Errorf("%s: package name is required", data.DepPackageDetails)
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	details := &models.Package{}
	resp, err := f.Client().GetJSON(ctx, "v1/packages/"+name, details)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

func init() {
	fetcher.RegisterDataFetcher(&packageDetailsFetcher{})
}
