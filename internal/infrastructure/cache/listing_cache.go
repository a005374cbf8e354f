package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// InMemoryListingCache is a TTL cache of remote attribute listings keyed by
// (shop, type). Single-process only; use the redis cache when running more
// than one instance.
type InMemoryListingCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[listingKey]listingEntry
}

type listingKey struct {
	shopID uuid.UUID
	typ    taxonomy.AttributeType
}

type listingEntry struct {
	items     []taxonomy.MappableItem
	expiresAt time.Time
}

// NewInMemoryListingCache creates a listing cache with the given TTL
func NewInMemoryListingCache(ttl time.Duration) *InMemoryListingCache {
	return &InMemoryListingCache{
		ttl:     ttl,
		entries: make(map[listingKey]listingEntry),
	}
}

// Get returns the cached listing, or ok=false on miss or expiry
func (c *InMemoryListingCache) Get(_ context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) ([]taxonomy.MappableItem, bool) {
	c.mu.RLock()
	entry, ok := c.entries[listingKey{shopID, typ}]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.items, true
}

// Set stores the listing under (shop, type)
func (c *InMemoryListingCache) Set(_ context.Context, shopID uuid.UUID, typ taxonomy.AttributeType, items []taxonomy.MappableItem) {
	c.mu.Lock()
	c.entries[listingKey{shopID, typ}] = listingEntry{
		items:     items,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops the entry for (shop, type)
func (c *InMemoryListingCache) Invalidate(_ context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) {
	c.mu.Lock()
	delete(c.entries, listingKey{shopID, typ})
	c.mu.Unlock()
}

// Ensure InMemoryListingCache implements ListingCache
var _ integration.ListingCache = (*InMemoryListingCache)(nil)
