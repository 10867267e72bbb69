package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"sellerboost-api/internal/cache"
	"sellerboost-api/internal/model"
)

const principalKeyPrefix = "principal:"

// CachedResolver caches resolved principals in an external cache, keyed by a
// hash of the token. Entries never outlive the token.
type CachedResolver struct {
	next  Resolver
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

var _ Resolver = (*CachedResolver)(nil)

// NewCachedResolver wraps next with c. ttl is the upper bound for an entry.
func NewCachedResolver(next Resolver, c cache.Cache, ttl time.Duration) *CachedResolver {
	return &CachedResolver{next: next, cache: c, ttl: ttl, now: time.Now}
}

// Resolve returns a cached principal or asks next. Cache errors fall through to next.
func (r *CachedResolver) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	key := tokenKey(token)

	if data, err := r.cache.Get(ctx, key); err == nil {
		var p model.Principal
		if err := json.Unmarshal(data, &p); err == nil && (p.ExpiresAt.IsZero() || r.now().Before(p.ExpiresAt)) {
			return &p, nil
		}
		_ = r.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		slog.WarnContext(ctx, "principal cache read failed", "stage", "auth", "error", err)
	}

	p, err := r.next.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	ttl := r.ttl
	if !p.ExpiresAt.IsZero() {
		if remaining := p.ExpiresAt.Sub(r.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return p, nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return p, nil
	}
	if err := r.cache.Set(ctx, key, data, ttl); err != nil {
		slog.WarnContext(ctx, "principal cache write failed", "stage", "auth", "error", err)
	}

	return p, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return principalKeyPrefix + hex.EncodeToString(sum[:])
}
