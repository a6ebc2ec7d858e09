package checker

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/namelens/handlescan/internal/core"
	"github.com/namelens/handlescan/internal/metrics"
)

// TokenCache resolves a platform token at most once.
//
// Concurrent callers share a single in-flight fetch. The outcome, success or
// failure, is final for the lifetime of the cache, except when the fetch was
// cut short by the caller's context: that leaves the cache unresolved.
type TokenCache struct {
	group singleflight.Group

	mu       sync.Mutex
	resolved bool
	token    *Token
	err      error
}

// Get returns the cached token, calling fetch on first use.
func (c *TokenCache) Get(ctx context.Context, platform core.Platform, fetch func(context.Context) (*Token, error)) (*Token, error) {
	for {
		if token, ok, err := c.load(); ok {
			return token, err
		}
		if err := ctx.Err(); err != nil {
			return nil, core.WrapError(core.ErrorKindCancelled, err)
		}

		value, err, _ := c.group.Do("token", func() (any, error) {
			if token, ok, err := c.load(); ok {
				return token, err
			}
			return c.fetch(ctx, platform, fetch)
		})
		if err != nil {
			// Another caller's fetch was cancelled; retry under our own context.
			if core.KindOf(err) == core.ErrorKindCancelled && ctx.Err() == nil {
				continue
			}
			return nil, err
		}
		token, _ := value.(*Token)
		return token, nil
	}
}

func (c *TokenCache) fetch(ctx context.Context, platform core.Platform, fetch func(context.Context) (*Token, error)) (*Token, error) {
	token, fetchErr := fetch(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && (fetchErr != nil || token == nil) {
		return nil, core.WrapError(core.ErrorKindCancelled, ctxErr)
	}

	var err error
	switch {
	case fetchErr != nil:
		err = &core.Error{Kind: core.ErrorKindToken, Detail: core.TokenErrorMessage, Err: fetchErr}
		token = nil
	case token == nil:
		err = core.ErrToken
	}
	metrics.RecordTokenFetch(platform, err == nil)

	c.mu.Lock()
	c.resolved, c.token, c.err = true, token, err
	c.mu.Unlock()
	return token, err
}

// Resolved reports whether a fetch has completed.
func (c *TokenCache) Resolved() bool {
	_, ok, _ := c.load()
	return ok
}

func (c *TokenCache) load() (*Token, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.resolved, c.err
}

// token resolves the checker's token through its cache.
func (b *base) token(ctx context.Context, fetch func(context.Context) (*Token, error)) (*Token, error) {
	return b.tokens.Get(ctx, b.platform, fetch)
}
