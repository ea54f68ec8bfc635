package resolution

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ExpansionCache is a compute-once, share-result cache for tier expansions
// across resolution batches. Keys carry the catalog version, so invalidation
// after an admin edit is O(1): the stamp moves on and old entries age out via
// the TTL. First writer wins on a key; a duplicate concurrent computation is
// wasted work, not a correctness problem.
type ExpansionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[expansionKey]expansionEntry
	now     func() time.Time
}

type expansionKey struct {
	category string
	version  int64
	tierCode string
}

type expansionEntry struct {
	exp     *expansion
	expires time.Time
}

// NewExpansionCache creates a cache whose entries live for ttl.
func NewExpansionCache(ttl time.Duration) *ExpansionCache {
	return &ExpansionCache{
		ttl:     ttl,
		entries: map[expansionKey]expansionEntry{},
		now:     time.Now,
	}
}

func (c *ExpansionCache) get(category string, version int64, tierCode string) (*expansion, bool) {
	key := expansionKey{category: category, version: version, tierCode: tierCode}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.exp, true
}

func (c *ExpansionCache) put(category string, version int64, tierCode string, exp *expansion) {
	key := expansionKey{category: category, version: version, tierCode: tierCode}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok && !c.now().After(existing.expires) {
		return
	}
	c.entries[key] = expansionEntry{exp: exp, expires: c.now().Add(c.ttl)}
}

// Purge drops expired entries and returns how many were removed. Meant for a
// periodic sweep; correctness never depends on it running.
func (c *ExpansionCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.entries {
		if c.now().After(entry.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries, expired ones included until purged.
func (c *ExpansionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RequestKey canonicalizes an element request into a stable cache key
// fragment: codes sorted, quantities attached. Two requests with the same
// content always produce the same key regardless of map order.
func RequestKey(request map[string]int) string {
	codes := make([]string, 0, len(request))
	for code := range request {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%s=%d", code, request[code])
	}
	return strings.Join(parts, "|")
}
