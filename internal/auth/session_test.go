package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewSessionStore(rdb, ttl), mr
}

func TestSessionStore_CreateAndResolve(t *testing.T) {
	store, _ := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	sid, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	userID, err := store.Resolve(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestSessionStore_ResolveUnknown(t *testing.T) {
	store, _ := setupSessionStore(t, time.Hour)

	_, err := store.Resolve(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionStore_SlidingExpiration(t *testing.T) {
	store, mr := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	sid, err := store.Create(ctx, 7)
	require.NoError(t, err)

	// Let most of the TTL elapse, then touch the session.
	mr.FastForward(50 * time.Minute)
	_, err = store.Resolve(ctx, sid)
	require.NoError(t, err)

	// Another 50 minutes would have expired the original TTL,
	// but Resolve refreshed it.
	mr.FastForward(50 * time.Minute)
	userID, err := store.Resolve(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	// With no activity the session eventually dies.
	mr.FastForward(2 * time.Hour)
	_, err = store.Resolve(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionStore_DestroyAllAfterSlidingRefresh(t *testing.T) {
	store, mr := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	sid, err := store.Create(ctx, 11)
	require.NoError(t, err)

	// Keep the session alive well past its original TTL. The per-user
	// index must slide along with it or revocation loses track of the
	// session.
	for i := 0; i < 3; i++ {
		mr.FastForward(50 * time.Minute)
		_, err = store.Resolve(ctx, sid)
		require.NoError(t, err)
	}

	require.NoError(t, store.DestroyAll(ctx, 11))

	_, err = store.Resolve(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionStore_Destroy(t *testing.T) {
	store, _ := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	sid, err := store.Create(ctx, 3)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, sid))

	_, err = store.Resolve(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)

	// Destroying an already-destroyed session is a no-op.
	assert.NoError(t, store.Destroy(ctx, sid))
}

func TestSessionStore_DestroyAll(t *testing.T) {
	store, _ := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	sid1, err := store.Create(ctx, 9)
	require.NoError(t, err)
	sid2, err := store.Create(ctx, 9)
	require.NoError(t, err)
	otherSid, err := store.Create(ctx, 10)
	require.NoError(t, err)

	require.NoError(t, store.DestroyAll(ctx, 9))

	_, err = store.Resolve(ctx, sid1)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = store.Resolve(ctx, sid2)
	assert.ErrorIs(t, err, ErrNoSession)

	// Other users' sessions survive.
	userID, err := store.Resolve(ctx, otherSid)
	require.NoError(t, err)
	assert.Equal(t, uint(10), userID)
}
