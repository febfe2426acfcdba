// Package query drives the staged retrieval workflow over collections:
// DISCOVER → LOAD → SELECT (external Ranker) → RESOLVE → EXTRACT. Each
// stage is independently abandonable; loading is the only eager stage,
// so irrelevant collections should be dropped after discovery.
package query

import (
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of collections a cache holds.
const DefaultCacheSize = 16

// Cache holds decoded collection indexes. It is caller-owned by design:
// there is no hidden global cache, so test runs stay isolated and a
// caller controls exactly how long loaded indexes live. Entries are
// validated against a fingerprint of index.jsonl, so a rebuild
// invalidates cached state on the next load.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache[string, cacheEntry]
	hits   int
	misses int
}

type cacheEntry struct {
	fingerprint uint64
	entries     []docdex.IndexEntry
}

// NewCache creates a Cache holding up to size collections. Size zero
// means DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) get(root string, fingerprint uint64) ([]docdex.IndexEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lru.Get(root)
	if !ok || entry.fingerprint != fingerprint {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.entries, true
}

func (c *Cache) put(root string, fingerprint uint64, entries []docdex.IndexEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(root, cacheEntry{fingerprint: fingerprint, entries: entries})
}

// fingerprintIndex hashes a collection's index.jsonl. Two generations of
// the same collection never hash equal unless their bytes are identical.
func fingerprintIndex(col docdex.Collection) (uint64, error) {
	data, err := os.ReadFile(col.IndexPath())
	if err != nil {
		return 0, docdex.Errorf(docdex.ENOTFOUND, "collection %q not found", col.Root)
	}
	return xxhash.Sum64(data), nil
}
