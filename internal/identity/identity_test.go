package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"sellerboost-api/internal/cache"
	"sellerboost-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	principal *model.Principal
	err       error
	calls     int
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p := *s.principal
	return &p, nil
}

// fakeCache stands in for Redis.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                   { return nil }

func TestCachedResolver_CachesUntilExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	next := &stubResolver{principal: &model.Principal{UserID: "user_1", ExpiresAt: now.Add(2 * time.Minute)}}
	fc := newFakeCache()

	r := NewCachedResolver(next, fc, 10*time.Minute)
	r.now = func() time.Time { return now }

	p1, err := r.Resolve(context.Background(), "token-a")
	require.NoError(t, err)
	p2, err := r.Resolve(context.Background(), "token-a")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, p1.UserID, p2.UserID)

	key := tokenKey("token-a")
	assert.Equal(t, 2*time.Minute, fc.ttls[key])
	assert.False(t, strings.Contains(key, "token-a"))
}

func TestCachedResolver_ExpiredEntryIsRefreshed(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	next := &stubResolver{principal: &model.Principal{UserID: "user_1", ExpiresAt: now.Add(time.Minute)}}
	fc := newFakeCache()

	r := NewCachedResolver(next, fc, 10*time.Minute)
	r.now = func() time.Time { return now }
	_, err := r.Resolve(context.Background(), "token-a")
	require.NoError(t, err)

	r.now = func() time.Time { return now.Add(5 * time.Minute) }
	_, err = r.Resolve(context.Background(), "token-a")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCachedResolver_ErrorsAreNotCached(t *testing.T) {
	next := &stubResolver{err: ErrInvalidToken}
	fc := newFakeCache()
	r := NewCachedResolver(next, fc, time.Minute)

	_, err := r.Resolve(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = r.Resolve(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.Equal(t, 2, next.calls)
	assert.Empty(t, fc.entries)
}

func TestCachedResolver_CacheFailureFallsThrough(t *testing.T) {
	next := &stubResolver{principal: &model.Principal{UserID: "user_1"}}
	fc := newFakeCache()
	fc.getErr = errors.New("connection refused")

	r := NewCachedResolver(next, fc, time.Minute)
	p, err := r.Resolve(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "user_1", p.UserID)
	assert.Equal(t, 1, next.calls)
}
