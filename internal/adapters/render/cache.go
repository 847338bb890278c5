package render

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// defaultCacheSize holds every chart of a few hundred sports.
const defaultCacheSize = 1024

// Cache keeps rendered images by key with oldest-first eviction. The
// dataset never changes after start, so an entry never goes stale. A nil
// image is a valid entry and records a chart with nothing to draw.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is the most recently added
	maxSize int
	hits    atomic.Int64
	misses  atomic.Int64
}

type cacheEntry struct {
	key   string
	image []byte
}

// CacheOption applies a configuration option to the Cache.
type CacheOption func(*Cache)

// WithMaxSize sets the maximum number of cached images. Non-positive
// values are ignored.
func WithMaxSize(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// NewCache creates an empty Cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the image stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return el.Value.(*cacheEntry).image, true
}

// Put stores image under key, evicting the oldest entry when full.
func (c *Cache) Put(key string, image []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).image = image
		return
	}
	if c.order.Len() >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, image: image})
}

// evictOldest must be called with c.mu held.
func (c *Cache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).key)
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
