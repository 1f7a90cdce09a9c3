// Package fetch is the fetch-with-cache collaborator the catalog loads
// through: fresh cache wins, then the upstream, then stale cache.
package fetch

import (
	"context"
	"log/slog"

	"smarteventparser/internal/apis/smartevent"
	"smarteventparser/internal/cache"
	"smarteventparser/internal/catalog"
)

type Client struct {
	api   smartevent.Service
	cache *cache.Store
	log   *slog.Logger
}

func New(api smartevent.Service, store *cache.Store, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{api: api, cache: store, log: log}
}

// Fetch implements catalog.Fetcher. A transport failure degrades to the
// last stored value even when expired; empty comes back only when the
// upstream failed and nothing was ever cached.
func (c *Client) Fetch(ctx context.Context, kind catalog.Kind, channel string) ([]byte, error) {
	action, err := kind.Action()
	if err != nil {
		return nil, err
	}
	if action == "" {
		return nil, nil
	}

	key := catalog.CacheKey(kind, channel)

	if !c.cache.IsExpired(key) {
		if b, ok := c.cache.Retrieve(key, false); ok {
			return b, nil
		}
	}

	b, err := c.api.GetEntities(ctx, action, channel)
	if err == nil && len(b) > 0 {
		if serr := c.cache.Store(key, b); serr != nil {
			c.log.Warn("cache store failed", "key", key, "err", serr)
		}
		return b, nil
	}
	if err != nil {
		c.log.Warn("upstream fetch failed, trying stale cache",
			"action", action, "channel", channel, "err", err)
	}

	if stale, ok := c.cache.Retrieve(key, true); ok {
		return stale, nil
	}
	return nil, nil
}
