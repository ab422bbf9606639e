package crawler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/deepnav/webnav/internal/config"
	"github.com/deepnav/webnav/internal/model"
)

// NavigateBatch crawls several seed URLs concurrently, one Navigator per
// seed so each crawl has its own cache and session. Results come back in
// seed order. A canceled context stops all crawls; individual crawls still
// return their partial paths.
//
// Design decision: Seeds do not share a Navigator. Sharing the cache across
// seeds would let one site's crawl observe another's pages when seeds
// overlap, which makes per-session artifacts non-reproducible.
func NavigateBatch(ctx context.Context, cfg *config.Config, seeds []string, opts ...Option) ([]*model.NavigationPath, error) {
	paths := make([]*model.NavigationPath, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchConcurrency)

	for i, seed := range seeds {
		g.Go(func() error {
			nav := New(cfg, opts...)
			path, err := nav.NavigateDeep(ctx, seed)
			paths[i] = path
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return paths, err
	}
	return paths, nil
}
