package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/propkeeper/internal/common"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_ConcurrentCallersShareOneRefresh(t *testing.T) {
	const callers = 8

	store := &memStore{token: "stale"}

	var calls atomic.Int32
	release := make(chan struct{})
	refresh := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release // hold the renewal in flight until every caller has joined
		return "fresh-token", nil
	}

	c := NewCoordinator(store, refresh, discardLogger())

	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.EnsureFresh(context.Background())
		}(i)
	}

	// Give every goroutine a chance to reach the coordinator, then let the
	// single renewal finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, calls.Load(), "expected a single renewal call")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "fresh-token", results[i])
	}

	token, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresh-token", token)
	require.Equal(t, 1, store.sets)
}

func TestCoordinator_FailureClearsTokenAndFailsAllWaiters(t *testing.T) {
	const callers = 4

	store := &memStore{token: "stale"}

	var calls atomic.Int32
	release := make(chan struct{})
	refresh := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "", errors.New("server said no")
	}

	c := NewCoordinator(store, refresh, discardLogger())

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.EnsureFresh(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, calls.Load())
	for i := 0; i < callers; i++ {
		require.ErrorIs(t, errs[i], common.ErrRefreshFailed, "caller %d", i)
	}

	token, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, token, "token must be cleared after a failed refresh")
}

func TestCoordinator_ResetsToIdleBetweenAttempts(t *testing.T) {
	store := &memStore{}

	var calls atomic.Int32
	refresh := func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		if n == 1 {
			return "", errors.New("transient")
		}
		return "second-token", nil
	}

	c := NewCoordinator(store, refresh, discardLogger())

	_, err := c.EnsureFresh(context.Background())
	require.ErrorIs(t, err, common.ErrRefreshFailed)

	// A failed attempt must not wedge the coordinator.
	token, err := c.EnsureFresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "second-token", token)
	require.EqualValues(t, 2, calls.Load())
}

func TestCoordinator_CallerCancellationDoesNotKillSharedRefresh(t *testing.T) {
	store := &memStore{}

	started := make(chan struct{})
	release := make(chan struct{})
	refresh := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		// The shared renewal must survive the first caller's cancellation.
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "fresh-token", nil
	}

	c := NewCoordinator(store, refresh, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
		close(release)
	}()

	token, err := c.EnsureFresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "fresh-token", token)
}
