package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestSessions_RevokeAndCheck(t *testing.T) {
	rdb, mr := setupRedis(t)
	sessions := NewSessions(rdb)
	ctx := context.Background()

	const token = "header.payload.signature"

	assert.False(t, sessions.IsRevoked(ctx, token))

	require.NoError(t, sessions.Revoke(ctx, token, time.Hour))
	assert.True(t, sessions.IsRevoked(ctx, token))

	// Raw token must not appear as a key.
	for _, key := range mr.Keys() {
		assert.NotContains(t, key, token)
	}
}

func TestSessions_RevocationExpiresWithToken(t *testing.T) {
	rdb, mr := setupRedis(t)
	sessions := NewSessions(rdb)
	ctx := context.Background()

	const token = "short.lived.token"

	require.NoError(t, sessions.Revoke(ctx, token, time.Minute))
	assert.True(t, sessions.IsRevoked(ctx, token))

	mr.FastForward(2 * time.Minute)
	assert.False(t, sessions.IsRevoked(ctx, token))
}

func TestSessions_ExpiredTokenNotStored(t *testing.T) {
	rdb, mr := setupRedis(t)
	sessions := NewSessions(rdb)

	require.NoError(t, sessions.Revoke(context.Background(), "stale.token", -time.Minute))
	assert.Empty(t, mr.Keys())
}

func TestSessions_FailsOpenWhenRedisDown(t *testing.T) {
	rdb, mr := setupRedis(t)
	sessions := NewSessions(rdb)

	mr.Close()
	assert.False(t, sessions.IsRevoked(context.Background(), "any.token"))
}

func TestQueueLengths_SetGetInvalidate(t *testing.T) {
	rdb, _ := setupRedis(t)
	lengths := NewQueueLengths(rdb)
	ctx := context.Background()

	_, ok := lengths.Get(ctx, 1)
	assert.False(t, ok)

	lengths.Set(ctx, 1, 4)
	n, ok := lengths.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	// Per-shop keys stay independent.
	_, ok = lengths.Get(ctx, 2)
	assert.False(t, ok)

	lengths.Invalidate(ctx, 1)
	_, ok = lengths.Get(ctx, 1)
	assert.False(t, ok)
}

func TestQueueLengths_EntryExpires(t *testing.T) {
	rdb, mr := setupRedis(t)
	lengths := NewQueueLengths(rdb)
	ctx := context.Background()

	lengths.Set(ctx, 7, 2)
	mr.FastForward(queueLengthTTL + time.Second)

	_, ok := lengths.Get(ctx, 7)
	assert.False(t, ok)
}
