// Package cache provides an optional redis-backed cache for beat lookups.
// Beats are immutable once catalogued, so entries only expire by TTL; the
// TTL bounds staleness from out-of-band curation edits.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"beatstore/logger"
	"beatstore/model"

	"github.com/redis/go-redis/v9"
)

// BeatCache caches beat records by ID.
type BeatCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBeatCache wraps a connected redis client.
func NewBeatCache(client *redis.Client, ttl time.Duration) *BeatCache {
	return &BeatCache{client: client, ttl: ttl}
}

func beatKey(id int64) string {
	return fmt.Sprintf("beat:%d", id)
}

// Get returns the cached beat and true on a hit. Cache errors are logged
// and treated as misses; the store stays authoritative.
func (c *BeatCache) Get(ctx context.Context, id int64) (*model.Beat, bool) {
	data, err := c.client.Get(ctx, beatKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Beat cache read failed", logger.Int64("id", id), logger.ErrorField(err))
		}
		return nil, false
	}

	beat := &model.Beat{}
	if err := json.Unmarshal(data, beat); err != nil {
		logger.Warn("Beat cache entry corrupt, dropping", logger.Int64("id", id), logger.ErrorField(err))
		c.client.Del(ctx, beatKey(id))
		return nil, false
	}
	return beat, true
}

// Set stores a beat under its ID with the configured TTL.
func (c *BeatCache) Set(ctx context.Context, beat *model.Beat) {
	data, err := json.Marshal(beat)
	if err != nil {
		logger.Warn("Failed to marshal beat for cache", logger.Int64("id", beat.ID), logger.ErrorField(err))
		return
	}
	if err := c.client.Set(ctx, beatKey(beat.ID), data, c.ttl).Err(); err != nil {
		logger.Warn("Beat cache write failed", logger.Int64("id", beat.ID), logger.ErrorField(err))
	}
}
