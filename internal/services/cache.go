package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tourkita/tourkita-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// ReportCacheTTL bounds how stale a cached report payload may be
	ReportCacheTTL = 10 * time.Minute
)

// CacheService caches the heavier report payloads (full feedback fetches,
// computed summaries) so repeated drill navigation doesn't refetch.
type CacheService struct{}

// Get retrieves a value from cache. A miss is not an error.
func (c *CacheService) Get(key string, dest interface{}) (bool, error) {
	ctx := context.Background()

	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in cache with the report TTL.
func (c *CacheService) Set(key string, value interface{}) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(context.Background(), CacheKeyPrefix+key, jsonData, ReportCacheTTL).Err()
}

// Delete removes a value from cache
func (c *CacheService) Delete(key string) error {
	return database.RedisClient.Del(context.Background(), CacheKeyPrefix+key).Err()
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}

// Global cache service instance
var Cache = &CacheService{}
