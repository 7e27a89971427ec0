package catalog

import "sync"

// Cache is a read-through cache of loaded config snapshots keyed by resource name.
// Concurrent first reads may each run the loader; the last store wins.
type Cache struct {
	bypass  bool
	entries sync.Map
}

// NewCache creates a cache; with bypass set every read goes to the loader
func NewCache(bypass bool) *Cache {
	return &Cache{bypass: bypass}
}

// Bypass reports whether the cache always reloads
func (c *Cache) Bypass() bool {
	return c.bypass
}

// Invalidate drops every cached snapshot
func (c *Cache) Invalidate() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}

func cached[T any](c *Cache, key string, load func() (T, error)) (T, error) {
	if c != nil && !c.bypass {
		if v, ok := c.entries.Load(key); ok {
			return v.(T), nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if c != nil && !c.bypass {
		c.entries.Store(key, v)
	}
	return v, nil
}
