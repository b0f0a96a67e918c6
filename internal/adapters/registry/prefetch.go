package registry

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Prefetch warms the package document caches for the given names
// concurrently. Errors are deliberately swallowed: the resolver fetches each
// package again on demand and reports failures with full requestor context,
// which a prefetch error lacks.
func (c *Client) Prefetch(ctx context.Context, registryNames []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, name := range registryNames {
		g.Go(func() error {
			_, _ = c.fetch(ctx, name)
			return nil
		})
	}
	_ = g.Wait()
}
