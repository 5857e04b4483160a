package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"outage_portal_backend/internal/location"
	"outage_portal_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// CachedReverseClient caches reverse-geocode results in Redis. Coordinates
// are rounded to four decimals (~11m) so nearby fixes share an entry.
// Cache failures never fail the lookup; they fall through to the provider.
type CachedReverseClient struct {
	inner ReverseClient
	rdb   *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedReverseClient wraps a reverse client with a Redis cache.
func NewCachedReverseClient(inner ReverseClient, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedReverseClient {
	return &CachedReverseClient{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("geocode:reverse:%.4f,%.4f", lat, lng)
}

// ReverseGeocode returns the cached result when present, otherwise asks the
// provider and stores the answer.
func (c *CachedReverseClient) ReverseGeocode(ctx context.Context, lat, lng float64) (location.RawPlaceData, error) {
	key := cacheKey(lat, lng)

	if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var raw location.RawPlaceData
		if err := json.Unmarshal(cached, &raw); err == nil {
			return raw, nil
		}
		// Corrupt entry: drop it and refetch.
		_ = c.rdb.Del(ctx, key).Err()
	}

	raw, err := c.inner.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return location.RawPlaceData{}, err
	}

	if encoded, err := json.Marshal(raw); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.log.Warn("geocode cache write failed", "key", key, "error", err)
		}
	}

	return raw, nil
}
