// README: Redis cache of validated itineraries keyed by prompt hash.
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "planai:itinerary:"

// RedisCache stores itineraries that already passed validation.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached itinerary for promptKey. Entries are validated again
// on the way out so a corrupted value is reported, never served.
func (c *RedisCache) Get(ctx context.Context, promptKey string) (TripResponse, bool, error) {
	b, err := c.rdb.Get(ctx, cacheKeyPrefix+promptKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return TripResponse{}, false, nil
	}
	if err != nil {
		return TripResponse{}, false, err
	}
	resp, err := ValidateResponse(b)
	if err != nil {
		return TripResponse{}, false, err
	}
	return resp, true, nil
}

func (c *RedisCache) Set(ctx context.Context, promptKey string, resp TripResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKeyPrefix+promptKey, b, c.ttl).Err()
}
