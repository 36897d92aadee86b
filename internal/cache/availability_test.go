package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/service"
)

func setupTestRedis(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewAvailabilityCache(client, time.Minute), mr
}

func TestAvailabilityCache_RoundTrip(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	dates := []model.Date{"2025-06-01", "2025-07-01"}

	require.NoError(t, c.Set(ctx, 7, "2025-05-01", 0, dates))
	assert.True(t, mr.Exists("availability:7"))
	assert.Equal(t, time.Minute, mr.TTL("availability:7"))

	got, err := c.Get(ctx, 7, "2025-05-01")
	require.NoError(t, err)
	assert.Equal(t, dates, got)
}

func TestAvailabilityCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, err := c.Get(context.Background(), 1, "2025-05-01")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestAvailabilityCache_StaleDayIsMiss(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 1, "2025-05-01", 0, []model.Date{"2025-05-01"}))

	_, err := c.Get(ctx, 1, "2025-05-02")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestAvailabilityCache_EmptyList(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 1, "2025-05-01", 0, nil))

	got, err := c.Get(ctx, 1, "2025-05-01")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 3, "2025-05-01", 0, []model.Date{"2025-06-01"}))

	require.NoError(t, c.Invalidate(ctx, 3))
	assert.False(t, mr.Exists("availability:3"))
	gen, err := c.Generation(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	_, err = c.Get(ctx, 3, "2025-05-01")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestAvailabilityCache_SetAfterInvalidateIsDropped(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	// A booking invalidates between the read and the write.
	require.NoError(t, c.Invalidate(ctx, 5))
	require.NoError(t, c.Set(ctx, 5, "2025-05-01", gen, []model.Date{}))
	assert.False(t, mr.Exists("availability:5"))

	fresh, err := c.Generation(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, 5, "2025-05-01", fresh, []model.Date{"2025-06-01"}))

	got, err := c.Get(ctx, 5, "2025-05-01")
	require.NoError(t, err)
	assert.Equal(t, []model.Date{"2025-06-01"}, got)
}

func TestAvailabilityCache_Expiry(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 3, "2025-05-01", 0, []model.Date{"2025-06-01"}))

	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, 3, "2025-05-01")
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestAvailabilityCache_CorruptEntry(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("availability:9", "{not json"))

	_, err := c.Get(context.Background(), 9, "2025-05-01")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCacheMiss)
}
