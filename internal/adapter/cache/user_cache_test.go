package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "mysql-user-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisUserCache_SetAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)

	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	user := &domain.User{ID: 1, Name: "Alice"}

	err := cache.Set(context.Background(), user)
	require.NoError(t, err)

	// Verify raw data is in Redis
	data, err := client.Get(context.Background(), "user:1").Bytes()
	require.NoError(t, err)

	var cached domain.User
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, *user, cached)

	got, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *user, *got)
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	got, err := cache.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_Expired(t *testing.T) {
	client, mr := setupTestRedis(t)

	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	require.NoError(t, cache.Set(context.Background(), &domain.User{ID: 1, Name: "Alice"}))

	// Fast forward time in miniredis past the TTL
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	require.NoError(t, cache.Set(context.Background(), &domain.User{ID: 1, Name: "Alice"}))
	require.NoError(t, cache.Delete(context.Background(), 1))

	got, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Listing(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	// Miss before anything is cached
	got, err := cache.GetList(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	users := []domain.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
	require.NoError(t, cache.SetList(ctx, users))

	got, err = cache.GetList(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	require.NoError(t, cache.InvalidateList(ctx))

	got, err = cache.GetList(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_SetList_Nil(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.SetList(context.Background(), nil)
	assert.Error(t, err)
}

func TestRedisUserCache_SetList_Empty(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, cache.SetList(ctx, []domain.User{}))

	got, err := cache.GetList(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
