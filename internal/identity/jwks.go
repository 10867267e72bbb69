package identity

import (
	"context"
	"sync"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"golang.org/x/sync/singleflight"
)

const defaultKeyTTL = time.Hour

type keyFetcher func(ctx context.Context, kid string) (*clerk.JSONWebKey, error)

type cachedKey struct {
	key       *clerk.JSONWebKey
	fetchedAt time.Time
}

// keyCache holds the provider's public signing keys by key id so that token
// verification only reaches the provider for an unseen or stale kid.
// Concurrent misses for the same kid share one fetch.
type keyCache struct {
	fetch keyFetcher
	ttl   time.Duration
	now   func() time.Time

	mu    sync.RWMutex
	keys  map[string]cachedKey
	group singleflight.Group
}

func newKeyCache(fetch keyFetcher, ttl time.Duration) *keyCache {
	if ttl <= 0 {
		ttl = defaultKeyTTL
	}
	return &keyCache{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
		keys:  make(map[string]cachedKey),
	}
}

// get returns the key for kid, fetching it when absent or older than the TTL.
// Failed fetches are not cached.
func (c *keyCache) get(ctx context.Context, kid string) (*clerk.JSONWebKey, error) {
	c.mu.RLock()
	entry, ok := c.keys[kid]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.key, nil
	}

	v, err, _ := c.group.Do(kid, func() (interface{}, error) {
		key, err := c.fetch(ctx, kid)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.keys[kid] = cachedKey{key: key, fetchedAt: c.now()}
		c.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*clerk.JSONWebKey), nil
}
