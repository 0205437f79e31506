package storage

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cached is a write-through read cache in front of another Store. Absent keys
// are not cached.
type Cached struct {
	inner Store
	cache *cache.Cache
}

// NewCached wraps inner. Entries expire after ttl.
func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{inner: inner, cache: cache.New(ttl, 2*ttl)}
}

func (c *Cached) GetItem(key string) (string, bool, error) {
	if v, ok := c.cache.Get(key); ok {
		return v.(string), true, nil
	}
	v, ok, err := c.inner.GetItem(key)
	if err != nil || !ok {
		return v, ok, err
	}
	c.cache.SetDefault(key, v)
	return v, true, nil
}

func (c *Cached) SetItem(key, value string) error {
	if err := c.inner.SetItem(key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.SetDefault(key, value)
	return nil
}

func (c *Cached) RemoveItem(key string) error {
	c.cache.Delete(key)
	return c.inner.RemoveItem(key)
}

func (c *Cached) Close() error {
	c.cache.Flush()
	return c.inner.Close()
}
