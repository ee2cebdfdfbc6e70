package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSessionStore(client), mr
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	s, err := store.Create(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:"+s.Token))
	assert.Equal(t, time.Hour, mr.TTL("session:"+s.Token))

	got, err := store.Find(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, s.Token, got.Token)
	assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Millisecond)

	require.NoError(t, store.Destroy(ctx, s.Token))
	_, err = store.Find(ctx, s.Token)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// destroying twice is fine
	require.NoError(t, store.Destroy(ctx, s.Token))
}

func TestRedisSessionStore_KeyExpires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	s, err := store.Create(ctx, 1, time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Find(ctx, s.Token)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRedisSessionStore_CorruptEntry(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("session:broken", "xyz"))
	_, err := store.Find(context.Background(), "broken")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRedisSessionStore_BackendDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisSessionStore(client)
	mr.Close()

	_, err = store.Find(context.Background(), "anything")
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := DialRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = DialRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
