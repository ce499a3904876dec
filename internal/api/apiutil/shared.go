package apiutil

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Shared runs fn once for all concurrent callers of key. fn gets a context
// that keeps ctx's values but not its cancellation, so a caller that goes
// away does not fail the others; each caller stops waiting when its own ctx
// ends. The upstream client's timeout bounds fn.
func Shared(ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) error) (bool, error) {
	detached := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		return nil, fn(detached)
	})
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-ch:
		return res.Shared, res.Err
	}
}
