package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/redis"
)

func newStore(t *testing.T, ttl time.Duration) (*redis.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := redis.NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewSessionStore(rdb, ttl), mr
}

func TestSessionStore_GuardaYLee(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	ctx := context.Background()

	sess := &entity.Session{
		ID:       "s-1",
		RoomCode: "AB12CD",
		Lines: []entity.CartLine{
			{ProductID: "p-1", Name: "Kopi", Price: 5000, Quantity: 2, Cost: 3000},
		},
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "AB12CD", got.RoomCode)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(2), got.Lines[0].Quantity)
	// El HPP no se persiste en la sesión.
	assert.Equal(t, int64(0), got.Lines[0].Cost)
}

func TestSessionStore_InexistenteDevuelveNil(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_ExpiraConTTL(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s-ttl"}))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "s-ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s-del"}))
	require.NoError(t, store.Delete(ctx, "s-del"))

	got, err := store.Get(ctx, "s-del")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewClient_URLInvalida(t *testing.T) {
	_, err := redis.NewClient(context.Background(), "::no-es-url")
	assert.Error(t, err)
}
