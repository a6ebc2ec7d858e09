package checker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namelens/handlescan/internal/core"
)

func TestTokenCacheSingleFetchUnderConcurrency(t *testing.T) {
	var cache TokenCache
	var calls atomic.Int32
	fetch := func(context.Context) (*Token, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return &Token{Value: "tok"}, nil
	}

	var wg sync.WaitGroup
	results := make([]*Token, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get(context.Background(), core.PlatformGitHub, fetch)
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i, token := range results {
		require.NoError(t, errs[i])
		require.Equal(t, "tok", token.Value)
	}
	require.True(t, cache.Resolved())
}

func TestTokenCacheFailureIsFinal(t *testing.T) {
	var cache TokenCache
	var calls atomic.Int32
	fetch := func(context.Context) (*Token, error) {
		calls.Add(1)
		return nil, nil
	}

	for range 3 {
		token, err := cache.Get(context.Background(), core.PlatformSnapchat, fetch)
		require.Nil(t, token)
		require.Equal(t, core.ErrorKindToken, core.KindOf(err))
	}
	require.Equal(t, int32(1), calls.Load())
}

func TestTokenCacheWrapsFetchError(t *testing.T) {
	var cache TokenCache
	boom := errors.New("connection reset")
	_, err := cache.Get(context.Background(), core.PlatformYahoo, func(context.Context) (*Token, error) {
		return &Token{Value: "ignored"}, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, core.ErrorKindToken, core.KindOf(err))
	require.Equal(t, "TokenError: "+core.TokenErrorMessage, core.FailureMessage(err))
}

func TestTokenCacheCancelledFetchIsNotFinal(t *testing.T) {
	var cache TokenCache
	var calls atomic.Int32
	fetch := func(ctx context.Context) (*Token, error) {
		calls.Add(1)
		return &Token{Value: "x"}, nil
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	token, err := cache.Get(cancelled, core.PlatformInstagram, fetch)
	require.Nil(t, token)
	require.Equal(t, core.ErrorKindCancelled, core.KindOf(err))
	require.False(t, cache.Resolved())
	require.Equal(t, int32(0), calls.Load())

	token, err = cache.Get(context.Background(), core.PlatformInstagram, fetch)
	require.NoError(t, err)
	require.Equal(t, "x", token.Value)
	require.Equal(t, int32(1), calls.Load())
}

func TestTokenCacheFetchInterruptedByCancel(t *testing.T) {
	var cache TokenCache
	var calls atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	_, err := cache.Get(ctx, core.PlatformLastfm, func(ctx context.Context) (*Token, error) {
		calls.Add(1)
		cancel()
		return nil, ctx.Err()
	})
	require.Equal(t, core.ErrorKindCancelled, core.KindOf(err))
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, cache.Resolved())

	token, err := cache.Get(context.Background(), core.PlatformLastfm, func(context.Context) (*Token, error) {
		calls.Add(1)
		return &Token{Value: "fresh"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "fresh", token.Value)
	require.Equal(t, int32(2), calls.Load())
	require.True(t, cache.Resolved())
}
