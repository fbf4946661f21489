package infra

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultMaxCacheEntries bounds memory used by cached wiki responses
	DefaultMaxCacheEntries = 1000

	// cleanupInterval is how often expired entries are swept
	cleanupInterval = 5 * time.Minute
)

// cacheEntry holds one cached value with its expiry and last access time.
// accessedAt is unix nanoseconds, updated atomically on reads.
type cacheEntry struct {
	data       interface{}
	expiresAt  time.Time
	accessedAt atomic.Int64
}

// Cache is a TTL cache with LRU eviction, used for wiki page bodies and
// page listings. Safe for concurrent use.
type Cache struct {
	entries    sync.Map // key (string) -> *cacheEntry
	count      atomic.Int64
	maxEntries int64
	evictMu    sync.Mutex

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache holding at most maxEntries values
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	c := &Cache{
		maxEntries: int64(maxEntries),
		stopCh:     make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached value for key if present and unexpired
func (c *Cache) Get(key string) (interface{}, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	entry := value.(*cacheEntry)
	now := time.Now()
	if now.After(entry.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	entry.accessedAt.Store(now.UnixNano())
	return entry.data, true
}

// Set stores data under key for the given TTL
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	entry := &cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	entry.accessedAt.Store(time.Now().UnixNano())

	if _, existed := c.entries.Swap(key, entry); !existed {
		if over := c.count.Add(1) - c.maxEntries; over > 0 {
			c.evictOldest(int(over + c.maxEntries/10))
		}
	}
}

// Delete removes key from the cache
func (c *Cache) Delete(key string) {
	if _, existed := c.entries.LoadAndDelete(key); existed {
		c.count.Add(-1)
	}
}

// DeletePrefix removes every entry whose key starts with prefix.
// Used to drop all cached reads after a page write.
func (c *Cache) DeletePrefix(prefix string) {
	c.entries.Range(func(key, _ interface{}) bool {
		if k := key.(string); len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			c.Delete(k)
		}
		return true
	})
}

// Size returns the current number of entries
func (c *Cache) Size() int64 {
	return c.count.Load()
}

// Close stops the background cleanup goroutine
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.removeExpired()
			if over := c.count.Load() - c.maxEntries; over > 0 {
				c.evictOldest(int(over + c.maxEntries/10))
			}
		}
	}
}

func (c *Cache) removeExpired() {
	now := time.Now()
	c.entries.Range(func(key, value interface{}) bool {
		if now.After(value.(*cacheEntry).expiresAt) {
			c.Delete(key.(string))
		}
		return true
	})
}

// evictOldest drops the n least recently used entries
func (c *Cache) evictOldest(n int) {
	c.evictMu.Lock()
	defer c.evictMu.Unlock()

	type keyedAccess struct {
		key        string
		accessedAt int64
	}
	var all []keyedAccess
	c.entries.Range(func(key, value interface{}) bool {
		all = append(all, keyedAccess{
			key:        key.(string),
			accessedAt: value.(*cacheEntry).accessedAt.Load(),
		})
		return true
	})

	sort.Slice(all, func(i, j int) bool {
		return all[i].accessedAt < all[j].accessedAt
	})

	for i := 0; i < n && i < len(all); i++ {
		c.Delete(all[i].key)
	}
}
