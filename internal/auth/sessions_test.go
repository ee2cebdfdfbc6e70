package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionStores(t *testing.T) map[string]SessionStore {
	t.Helper()
	conn := dbtest.Open(t, &User{}, &Session{})

	mem, err := NewMemorySessionStore(context.Background(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })

	return map[string]SessionStore{
		"database": NewDBSessionStore(conn),
		"memory":   mem,
	}
}

func TestSessionStores_Lifecycle(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := store.Create(ctx, 9, 30*time.Minute)
			require.NoError(t, err)
			assert.NotEmpty(t, created.Token)

			found, err := store.Find(ctx, created.Token)
			require.NoError(t, err)
			assert.Equal(t, uint(9), found.UserID)
			assert.WithinDuration(t, created.ExpiresAt, found.ExpiresAt, time.Second)

			require.NoError(t, store.Destroy(ctx, created.Token))

			_, err = store.Find(ctx, created.Token)
			assert.True(t, errors.Is(err, apperr.ErrNotFound))

			// destroying twice is harmless
			assert.NoError(t, store.Destroy(ctx, created.Token))
		})
	}
}

func TestSessionStores_TokensAreUnique(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a, err := store.Create(ctx, 1, time.Minute)
			require.NoError(t, err)
			b, err := store.Create(ctx, 1, time.Minute)
			require.NoError(t, err)
			assert.NotEqual(t, a.Token, b.Token)
		})
	}
}

func TestMemorySessionStore_Concurrent(t *testing.T) {
	store, err := NewMemorySessionStore(context.Background(), time.Hour)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			s, err := store.Create(ctx, id, time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			got, err := store.Find(ctx, s.Token)
			if assert.NoError(t, err) {
				assert.Equal(t, id, got.UserID)
			}
			assert.NoError(t, store.Destroy(ctx, s.Token))
		}(uint(i))
	}
	wg.Wait()
}

func TestDBSessionStore_PurgeExpired(t *testing.T) {
	conn := dbtest.Open(t, &Session{})
	store := NewDBSessionStore(conn)
	ctx := context.Background()

	live, err := store.Create(ctx, 1, time.Hour)
	require.NoError(t, err)
	stale, err := store.Create(ctx, 2, time.Minute)
	require.NoError(t, err)

	n, err := store.PurgeExpired(ctx, time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Find(ctx, live.Token)
	assert.NoError(t, err)
	_, err = store.Find(ctx, stale.Token)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSessionEncoding(t *testing.T) {
	in := Session{UserID: 77, ExpiresAt: time.Unix(0, 1_700_000_000_000_000_000), CreatedAt: time.Unix(0, 1_600_000_000_000_000_000)}
	out, ok := decodeSession(encodeSession(in))
	require.True(t, ok)
	assert.Equal(t, in.UserID, out.UserID)
	assert.True(t, in.ExpiresAt.Equal(out.ExpiresAt))

	_, ok = decodeSession([]byte{1, 2, 3})
	assert.False(t, ok)
}
