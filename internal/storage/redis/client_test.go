package storage

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore() (*Store, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return NewStore(&Client{Client: db}), mock
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	store, mock := setupStore()

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("blog_posts_cache").SetVal(`[{"id":"1"}]`)

		val, ok, err := store.Get(ctx, "blog_posts_cache")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, string(val))
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("blog_posts_cache").RedisNil()

		_, ok, err := store.Get(ctx, "blog_posts_cache")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet("blog_posts_cache").SetErr(redis.ErrClosed)

		_, ok, err := store.Get(ctx, "blog_posts_cache")
		assert.ErrorIs(t, err, redis.ErrClosed)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set(t *testing.T) {
	ctx := context.Background()
	store, mock := setupStore()
	value := []byte(`{"a":1}`)

	t.Run("successful set", func(t *testing.T) {
		mock.ExpectSet("k", value, time.Hour).SetVal("OK")
		assert.NoError(t, store.Set(ctx, "k", value, time.Hour))
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet("k", value, time.Hour).SetErr(redis.ErrClosed)
		assert.ErrorIs(t, store.Set(ctx, "k", value, time.Hour), redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, mock := setupStore()

	mock.ExpectDel("k").SetVal(1)
	assert.NoError(t, store.Delete(ctx, "k"))

	mock.ExpectDel("k").SetErr(redis.ErrClosed)
	assert.ErrorIs(t, store.Delete(ctx, "k"), redis.ErrClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
