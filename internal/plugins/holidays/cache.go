package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"remindcal/internal/calendar"
)

// Cache stores fetched holiday years in Redis.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a Redis-backed holiday cache. Entries expire after ttl
// so renamed or added holidays eventually show up without a restart.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: rdb, ttl: ttl}
}

// cacheKey builds the Redis key for one year and country.
func cacheKey(year int, countryCode string) string {
	return fmt.Sprintf("holidays:%s:%d", countryCode, year)
}

// staleKey builds the key of the non-expiring fallback copy.
func staleKey(year int, countryCode string) string {
	return fmt.Sprintf("holidays:stale:%s:%d", countryCode, year)
}

// Get returns the cached holidays for a year and country. ok is false on a
// cache miss or an unreadable entry.
func (c *Cache) Get(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, bool) {
	data, err := c.redis.Get(ctx, cacheKey(year, countryCode)).Bytes()
	if err != nil {
		return nil, false
	}

	var holidays []calendar.Holiday
	if err := json.Unmarshal(data, &holidays); err != nil {
		return nil, false
	}
	return holidays, true
}

// GetStale returns the non-expiring fallback copy for a year and country.
// Served only when the upstream API is down and the fresh entry expired.
func (c *Cache) GetStale(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, bool) {
	data, err := c.redis.Get(ctx, staleKey(year, countryCode)).Bytes()
	if err != nil {
		return nil, false
	}

	var holidays []calendar.Holiday
	if err := json.Unmarshal(data, &holidays); err != nil {
		return nil, false
	}
	return holidays, true
}

// Set stores the holidays for a year and country: a fresh entry with TTL
// plus a non-expiring fallback copy.
func (c *Cache) Set(ctx context.Context, year int, countryCode string, holidays []calendar.Holiday) error {
	data, err := json.Marshal(holidays)
	if err != nil {
		return fmt.Errorf("marshaling holidays: %w", err)
	}
	if err := c.redis.Set(ctx, cacheKey(year, countryCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("storing holidays in Redis: %w", err)
	}
	if err := c.redis.Set(ctx, staleKey(year, countryCode), data, 0).Err(); err != nil {
		return fmt.Errorf("storing holiday fallback in Redis: %w", err)
	}
	return nil
}
