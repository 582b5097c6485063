package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read. It stands in for
// the file cache when caching is disabled or no cache directory exists.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get implements [Cache]; it always misses.
func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set implements [Cache] as a no-op.
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete implements [Cache] as a no-op.
func (c *NullCache) Delete(context.Context, string) error { return nil }

// Close implements [Cache] as a no-op.
func (c *NullCache) Close() error { return nil }
