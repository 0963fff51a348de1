package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapstation/models"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, 10*time.Minute, 30*time.Second), mr
}

func sampleSession() *models.BookingSession {
	return &models.BookingSession{
		Code:      "BK-7X9",
		Date:      "2025-01-10",
		Resource:  "PC Gaming",
		Selection: models.SelectionRange{Start: &models.Slot{Label: "10:00", Index: 10}},
		Blocked:   []string{"08:00", "09:00"},
		Phase:     models.PhaseIdle,
	}
}

func exerciseStore(t *testing.T, store SessionStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "BK-7X9")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, sampleSession()))
	got, err := store.Get(ctx, "BK-7X9")
	require.NoError(t, err)
	assert.Equal(t, "PC Gaming", got.Resource)
	assert.Equal(t, []string{"08:00", "09:00"}, got.Blocked)
	require.NotNil(t, got.Selection.Start)
	assert.Equal(t, 10, got.Selection.Start.Index)
	assert.Nil(t, got.Selection.End)

	ok, err := store.Lock(ctx, "BK-7X9")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Lock(ctx, "BK-7X9")
	require.NoError(t, err)
	assert.False(t, ok, "second lock must be refused")
	require.NoError(t, store.Unlock(ctx, "BK-7X9"))
	ok, err = store.Lock(ctx, "BK-7X9")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "BK-7X9"))
	_, err = store.Get(ctx, "BK-7X9")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore(t *testing.T) {
	store, _ := newRedisStore(t)
	exerciseStore(t, store)
}

func TestMemorySessionStore(t *testing.T) {
	exerciseStore(t, NewMemorySessionStore(10*time.Minute))
}

func TestRedisSessionStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	mr.FastForward(11 * time.Minute)

	_, err := store.Get(ctx, "BK-7X9")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, "BK-7X9")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
