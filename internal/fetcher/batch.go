package fetcher

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"pantryctl/internal/data"
)

// FetchMany resolves several dependencies for one package concurrently and
// returns the results keyed by dependency. Fetches are launched in priority
// order so the most blocking data contends for the request budget first; the
// first error cancels the rest.
func (f *Fetcher) FetchMany(ctx context.Context, pkg string, reqs []data.DependencyRequest) (map[data.DependencyKey]any, error) {
	sorted := make([]data.DependencyRequest, len(reqs))
	copy(sorted, reqs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return data.Priority(sorted[i].Key) < data.Priority(sorted[j].Key)
	})

	var mu sync.Mutex
	results := make(map[data.DependencyKey]any, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	for _, req := range sorted {
		g.Go(func() error {
			val, err := f.Fetch(gctx, pkg, req.Key, req.Params)
			if err != nil {
				return err
			}
			mu.Lock()
			results[req.Key] = val
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
