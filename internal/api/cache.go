package api

import (
	"sync"

	"github.com/talentscope/talentscope/pkg/matching"
)

// CacheObserver counts cache lookups.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// ResultCache is a thread-safe LRU cache for loaded result tables.
// Tables of completed runs never change, so entries are never invalidated.
type ResultCache struct {
	mu       sync.Mutex
	maxSize  int
	entries  map[string]*matching.ResultTable
	order    []string // oldest first
	observer CacheObserver
}

// NewResultCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 20. observer may be nil.
func NewResultCache(maxSize int, observer CacheObserver) *ResultCache {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &ResultCache{
		maxSize:  maxSize,
		entries:  make(map[string]*matching.ResultTable),
		observer: observer,
	}
}

// Get retrieves a result table from the cache, or nil if not found.
func (c *ResultCache) Get(runID string) *matching.ResultTable {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, ok := c.entries[runID]
	if !ok {
		if c.observer != nil {
			c.observer.CacheMiss()
		}
		return nil
	}
	if c.observer != nil {
		c.observer.CacheHit()
	}

	// Move to end (most recently used)
	c.moveToEnd(runID)
	return table
}

// Put adds a result table to the cache, evicting the oldest if full.
func (c *ResultCache) Put(runID string, table *matching.ResultTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[runID]; ok {
		c.entries[runID] = table
		c.moveToEnd(runID)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[runID] = table
	c.order = append(c.order, runID)
}

// Len returns the number of cached tables.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResultCache) moveToEnd(runID string) {
	for i, k := range c.order {
		if k == runID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, runID)
			return
		}
	}
}
