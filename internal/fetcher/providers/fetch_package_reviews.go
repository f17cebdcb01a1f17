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

type packageReviewsFetcher struct{}

func (p *packageReviewsFetcher) Key() data.DependencyKey {
	return data.DepPackageReviews
}

func (p *packageReviewsFetcher) Scope() data.FetchScope {
	return data.ScopePackage
}

func (p *packageReviewsFetcher) Fetch(ctx context.Context, pkg string, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	name := strings.TrimSpace(pkg)
	if name == "" {
		return nil, fmt.Errorf("%s: package name is required", data.DepPackageReviews)
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var reviews []models.Review
	resp, err := f.Client().GetJSON(ctx, "v1/packages/"+name+"/reviews", &reviews)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		// A package without a review endpoint entry simply has no reviews.
		if catalog.IsNotFound(err) {
			return []models.Review(nil), nil
		}
		return nil, err
	}
	return reviews, nil
}

func init() {
	fetcher.RegisterDataFetcher(&packageReviewsFetcher{})
}
