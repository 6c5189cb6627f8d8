package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/propkeeper/internal/common"
	"github.com/dmitrijs2005/propkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Coordinator serializes token renewal: no matter how many callers hit an
// expired credential at once, exactly one renewal request is in flight, and
// every caller receives that request's outcome.
//
// On success the new token is stored before any caller is released, so a
// released caller can immediately replay its original request. On failure
// the stored token is cleared and every caller gets an error wrapping
// common.ErrRefreshFailed; the coordinator does not retry on its own.
type Coordinator struct {
	group   singleflight.Group
	store   TokenStore
	refresh func(ctx context.Context) (string, error)
	log     logging.Logger
}

func NewCoordinator(store TokenStore, refresh func(ctx context.Context) (string, error), log logging.Logger) *Coordinator {
	return &Coordinator{store: store, refresh: refresh, log: log}
}

// EnsureFresh returns a token that was valid at the moment the shared
// renewal completed. Callers arriving while a renewal is in flight join it
// instead of starting another one.
func (c *Coordinator) EnsureFresh(ctx context.Context) (string, error) {
	v, err, shared := c.group.Do(common.TokenStorageKey, func() (any, error) {
		// The renewal outlives the first caller: a waiter that abandons
		// interest must not cancel the attempt the others joined.
		rctx := context.WithoutCancel(ctx)

		token, err := c.refresh(rctx)
		if err != nil {
			c.log.Warn(rctx, "token refresh failed, clearing session", "error", err)
			if clearErr := c.store.Clear(rctx); clearErr != nil {
				c.log.Error(rctx, "token clear failed", "error", clearErr)
			}
			return "", fmt.Errorf("%w: %w", common.ErrRefreshFailed, err)
		}

		if err := c.store.Set(rctx, token); err != nil {
			return "", fmt.Errorf("%w: storing renewed token: %w", common.ErrRefreshFailed, err)
		}

		c.log.Info(rctx, "token refreshed")
		return token, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.log.Debug(ctx, "joined in-flight token refresh")
	}
	return v.(string), nil
}
