package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	// Get retrieves a value from cache; a miss is reported as ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes values from cache
	Delete(ctx context.Context, keys ...string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)
}

// Cache keys shared by the cached repository and the invalidation subscriber
const (
	CacheKeyHospitalPrefix = "hospital:"
	CacheKeyHospitalList   = "hospitals:all"
)

// Cache TTLs (in seconds)
const (
	CacheTTLHospital     = 300
	CacheTTLHospitalList = 120
)

// HospitalCacheKey returns the cache key of a single hospital
func HospitalCacheKey(id string) string {
	return CacheKeyHospitalPrefix + id
}
