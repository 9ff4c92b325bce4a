package search

import (
	"sync"
	"sync/atomic"

	"gomoku-local/eval"
	"gomoku-local/types"
)

// CacheKey identifies a position evaluated from one side's point of view.
type CacheKey struct {
	Hash uint64
	Side types.Side
}

type cacheStripe struct {
	mu      sync.RWMutex
	entries map[CacheKey]eval.Eval
}

// Cache is the transposition cache: position hash and side -> evaluation.
// Entries are never evicted; the cache lives as long as its owner.
// It is safe for concurrent use. Two workers racing on the same key both
// compute the value and the last store wins, which is harmless since the value
// for a key never changes.
type Cache struct {
	stripes    []cacheStripe
	stripeMask uint64
	hits       atomic.Uint64
	misses     atomic.Uint64
}

// DefaultStripes is the lock stripe count used when none is configured.
const DefaultStripes = 64

// NewCache creates an empty cache. stripes is rounded up to a power of two.
func NewCache(stripes int) *Cache {
	if stripes < 1 {
		stripes = DefaultStripes
	}
	n := 1
	for n < stripes {
		n *= 2
	}
	c := &Cache{
		stripes:    make([]cacheStripe, n),
		stripeMask: uint64(n - 1),
	}
	for i := range c.stripes {
		c.stripes[i].entries = make(map[CacheKey]eval.Eval)
	}
	return c
}

func (c *Cache) stripe(key CacheKey) *cacheStripe {
	return &c.stripes[key.Hash&c.stripeMask]
}

// Get returns the cached evaluation for key.
func (c *Cache) Get(key CacheKey) (eval.Eval, bool) {
	s := c.stripe(key)
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return e, ok
}

// Put stores e under key, replacing any previous value.
func (c *Cache) Put(key CacheKey, e eval.Eval) {
	s := c.stripe(key)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// GetOrCompute returns the cached evaluation for key, running compute and
// storing its result on a miss. compute runs without any lock held.
func (c *Cache) GetOrCompute(key CacheKey, compute func() eval.Eval) eval.Eval {
	if e, ok := c.Get(key); ok {
		c.hits.Add(1)
		return e
	}
	c.misses.Add(1)
	e := compute()
	c.Put(key, e)
	return e
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	for i := range c.stripes {
		s := &c.stripes[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// CacheStats are lookup counters since the cache was created.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Entries: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}
