// Package cache stores staging jars between runs so an unchanged build can
// skip the shrinker.
//
// Keys are content hashes of everything that determines the shrinker's
// output: the directive list and the size and modification time of every
// input. See [StagingKey].
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.StagingKey(directives, stamps)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // reuse data as the staging jar
//	}
//
// [NullCache] disables caching and is the default everywhere.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a staging jar stays valid when no TTL is given.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
