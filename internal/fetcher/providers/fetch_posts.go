package providers

import (
	"context"
	"net/url"

	"pantryctl/internal/data"
	"pantryctl/internal/data/models"
	"pantryctl/internal/fetcher"
)

type postsFetcher struct{}

func (p *postsFetcher) Key() data.DependencyKey {
	return data.DepPosts
}

func (p *postsFetcher) Scope() data.FetchScope {
	return data.ScopeGlobal
}

func (p *postsFetcher) Fetch(ctx context.Context, _ string, params map[string]string, f *fetcher.Fetcher) (any, error) {
	path := "v1/posts"
	if tag := params["tag"]; tag != "" {
		path += "?" + url.Values{"tag": []string{tag}}.Encode()
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var posts []models.Post
	resp, err := f.Client().GetJSON(ctx, path, &posts)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func init() {
	fetcher.RegisterDataFetcher(&postsFetcher{})
}
