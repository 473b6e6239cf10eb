package cache

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	jimage "github.com/lagertha-vm/lagertha-image"
)

// DefaultPrefetchWorkers is the Prefetch concurrency when none is configured.
const DefaultPrefetchWorkers = 4

// Prefetch resolves the given full paths into the cache and returns how
// many exist. It stops at the first lookup error or when ctx is done.
func (c *Image) Prefetch(ctx context.Context, fullPaths ...string) (int, error) {
	workers := c.prefetchWorkers
	if workers <= 0 {
		workers = DefaultPrefetchWorkers
	}

	var found atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range fullPaths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, ok, err := c.FindResource(p)
			if err != nil {
				return err
			}
			if ok {
				found.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return int(found.Load()), err
}

// PrefetchClasses is Prefetch over class names in the default module.
func (c *Image) PrefetchClasses(ctx context.Context, internalNames ...string) (int, error) {
	paths := make([]string, len(internalNames))
	for i, n := range internalNames {
		paths[i] = jimage.ClassPath(c.base.DefaultModule(), n)
	}
	return c.Prefetch(ctx, paths...)
}
