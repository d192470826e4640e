package suggest

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/five82/pkgscout/internal/registry"
)

// cacheEntry is a lookup result with its expiry.
type cacheEntry struct {
	items     []Item
	expiresAt time.Time
}

// lookupCache memoizes remote lookups by exact query for ttl and collapses
// concurrent lookups of the same query into one request.
type lookupCache struct {
	lookup registry.Searcher
	limit  int
	ttl    time.Duration
	clock  Clock

	entries *lru.Cache[string, cacheEntry]
	group   singleflight.Group
}

func newLookupCache(lookup registry.Searcher, limit, size int, ttl time.Duration, clock Clock) *lookupCache {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// only fails for size <= 0, which New never passes
		panic(fmt.Sprintf("create lookup cache: %v", err))
	}
	return &lookupCache{
		lookup:  lookup,
		limit:   limit,
		ttl:     ttl,
		clock:   clock,
		entries: cache,
	}
}

// get returns a fresh cached result for query.
func (c *lookupCache) get(query string) ([]Item, bool) {
	entry, ok := c.entries.Get(query)
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(entry.expiresAt) {
		c.entries.Remove(query)
		return nil, false
	}
	return cloneItems(entry.items), true
}

func (c *lookupCache) put(query string, items []Item) {
	c.entries.Add(query, cacheEntry{
		items:     cloneItems(items),
		expiresAt: c.clock.Now().Add(c.ttl),
	})
}

// fetch returns the cached result for query or performs the lookup.
// Failures are not cached.
func (c *lookupCache) fetch(ctx context.Context, query string) ([]Item, error) {
	if items, ok := c.get(query); ok {
		return items, nil
	}
	if c.lookup == nil {
		return nil, fmt.Errorf("no lookup configured")
	}
	v, err, _ := c.group.Do(query, func() (any, error) {
		if items, ok := c.get(query); ok {
			return items, nil
		}
		page, err := c.lookup.Search(ctx, query, c.limit, 0)
		if err != nil {
			return nil, err
		}
		items := packageItems(page.Packages)
		c.put(query, items)
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", query, err)
	}
	return cloneItems(v.([]Item)), nil
}
