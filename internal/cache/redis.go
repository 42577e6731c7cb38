// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/config"
)

// Keys for the dashboard aggregates, shared between the read-through
// handlers and the background warm job.
const (
	KeyRecentGames = "dashboard:recent_games"
	KeyTopClubs    = "dashboard:top_clubs"
	KeySiteStats   = "dashboard:site_stats"
)

// Cache is a thin JSON read-through layer over Redis, used for the
// dashboard aggregates. A nil *Cache is valid and behaves as a permanent
// miss, so the server keeps serving when Redis is down.
type Cache struct {
	rdb *redis.Client
}

// Connect initializes the Redis client and verifies connectivity.
func Connect(ctx context.Context, cfg *config.Config) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}
	return &Cache{rdb: rdb}, nil
}

// Close releases the client.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.rdb.Close()
}

// GetJSON unmarshals the cached value into dest. The boolean reports a
// hit; cache errors are logged at debug level and reported as misses.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.WithError(err).Debugf("cache get %s", key)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.WithError(err).Debugf("cache decode %s", key)
		return false
	}
	return true
}

// SetJSON stores the value under key with a TTL. Failures are logged and
// swallowed; caching is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		log.WithError(err).Debugf("cache encode %s", key)
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.WithError(err).Debugf("cache set %s", key)
	}
}
