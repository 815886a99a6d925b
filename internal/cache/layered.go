package cache

import (
	"errors"
	"time"
)

// DefaultFrontTTL bounds how long a promoted entry is served from the front
// tier before the back tier is consulted again
const DefaultFrontTTL = 5 * time.Minute

// LayeredCache puts a fast in-process tier in front of a slower or shared
// one (disk, redis). Writes go to both; reads promote back-tier hits.
type LayeredCache struct {
	front    Cache
	back     Cache
	frontTTL time.Duration
}

// NewLayeredCache stacks front over back. A frontTTL of zero or less uses
// DefaultFrontTTL.
func NewLayeredCache(front, back Cache, frontTTL time.Duration) *LayeredCache {
	if frontTTL <= 0 {
		frontTTL = DefaultFrontTTL
	}
	return &LayeredCache{front: front, back: back, frontTTL: frontTTL}
}

// frontFor caps ttl at the front tier's limit, so another process writing
// the shared tier is seen within frontTTL
func (c *LayeredCache) frontFor(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > c.frontTTL {
		return c.frontTTL
	}
	return ttl
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.front.Get(key); found {
		return val, true
	}

	val, found := c.back.Get(key)
	if !found {
		return nil, false
	}
	_ = c.front.Set(key, val, c.frontTTL)
	return val, true
}

// Set writes the back tier first so a failed write never leaves an entry
// only in memory
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.back.Set(key, value, ttl); err != nil {
		return err
	}
	return c.front.Set(key, value, c.frontFor(ttl))
}

func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.front.Delete(key), c.back.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return errors.Join(c.front.Clear(), c.back.Clear())
}
