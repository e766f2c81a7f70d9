package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/online-rent/internal/cache"
	"github.com/magabrotheeeer/online-rent/internal/config"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newMemoryManager(ttl time.Duration) (*Manager, *MemoryStore, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = c.now
	m := NewManager(store, ttl)
	m.now = c.now
	return m, store, c
}

func TestManager_CreateResolveDestroy(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newMemoryManager(time.Hour)
	userID := uuid.New()

	token, err := m.Create(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, token, 2*tokenBytes)

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, m.Destroy(ctx, token))

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newMemoryManager(time.Hour)
	userID := uuid.New()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := m.Create(ctx, userID)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestManager_ResolveUnknown(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newMemoryManager(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "unknown token", token: "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Resolve(ctx, tt.token)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestManager_Expiry(t *testing.T) {
	ctx := context.Background()
	m, store, c := newMemoryManager(time.Minute)

	token, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)

	c.advance(59 * time.Second)
	_, err = m.Resolve(ctx, token)
	require.NoError(t, err)

	c.advance(time.Second)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newMemoryManager(time.Hour)

	token, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)

	assert.NoError(t, m.Destroy(ctx, token))
	assert.NoError(t, m.Destroy(ctx, token))
	assert.NoError(t, m.Destroy(ctx, "never-existed"))
	assert.NoError(t, m.Destroy(ctx, ""))
}

type failingStore struct {
	err error
}

func (f failingStore) Get(context.Context, string, any) (bool, error) { return false, f.err }

func (f failingStore) Set(context.Context, string, any, time.Duration) error { return f.err }

func (f failingStore) Invalidate(context.Context, string) error { return f.err }

func TestManager_StoreErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("store down")
	m := NewManager(failingStore{err: storeErr}, time.Hour)

	_, err := m.Create(ctx, uuid.New())
	assert.ErrorIs(t, err, storeErr)

	_, err = m.Resolve(ctx, "token")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.Destroy(ctx, "token"), storeErr)
}

func TestManager_RedisStore(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisCache, err := cache.InitServer(ctx, config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	m := NewManager(redisCache, time.Minute)
	userID := uuid.New()

	token, err := m.Create(ctx, userID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+token))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+token))

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	mr.FastForward(2 * time.Minute)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	token, err = m.Create(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, m.Destroy(ctx, token))
	assert.False(t, mr.Exists(keyPrefix+token))
}
