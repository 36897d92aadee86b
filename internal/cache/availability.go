// Package cache keeps derived booking data in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/service"
)

// DefaultAvailabilityTTL bounds how long a blocked-date list may be served
// from Redis when no invalidation arrives.
const DefaultAvailabilityTTL = 5 * time.Minute

// AvailabilityCache stores each venue's blocked dates under
// "availability:<venueID>" and an invalidation counter under
// "availability:<venueID>:gen".  The entry remembers the day it was computed
// for; reading it on a later day is a miss, so yesterday's list is never
// served as today's.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache returns a cache backed by client.  A non-positive
// ttl selects DefaultAvailabilityTTL.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

type availabilityEntry struct {
	From  model.Date   `json:"from"`
	Dates []model.Date `json:"dates"`
}

func (c *AvailabilityCache) Get(ctx context.Context, venueID uint64, from model.Date) ([]model.Date, error) {
	data, err := c.client.Get(ctx, availabilityKey(venueID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entry availabilityEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal availability failed: %w", err)
	}
	if entry.From != from {
		return nil, service.ErrCacheMiss
	}
	if entry.Dates == nil {
		entry.Dates = []model.Date{}
	}
	return entry.Dates, nil
}

// setIfGeneration writes the entry only while the venue's generation still
// equals ARGV[1].  It returns 1 when stored and 0 when skipped.
var setIfGeneration = redis.NewScript(`
	local current = tonumber(redis.call('GET', KEYS[2]) or '0')
	if current ~= tonumber(ARGV[1]) then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
`)

// Generation returns how many times the venue has been invalidated.
func (c *AvailabilityCache) Generation(ctx context.Context, venueID uint64) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(venueID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// Set stores dates unless the venue was invalidated after gen was read.
func (c *AvailabilityCache) Set(ctx context.Context, venueID uint64, from model.Date, gen int64, dates []model.Date) error {
	data, err := json.Marshal(availabilityEntry{From: from, Dates: dates})
	if err != nil {
		return fmt.Errorf("marshal availability failed: %w", err)
	}
	keys := []string{availabilityKey(venueID), generationKey(venueID)}
	if err := setIfGeneration.Run(ctx, c.client, keys, gen, data, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry and bumps the generation in one
// transaction.
func (c *AvailabilityCache) Invalidate(ctx context.Context, venueID uint64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(venueID))
		pipe.Del(ctx, availabilityKey(venueID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func availabilityKey(venueID uint64) string {
	return fmt.Sprintf("availability:%d", venueID)
}

func generationKey(venueID uint64) string {
	return fmt.Sprintf("availability:%d:gen", venueID)
}
