package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryListingCache_SetGetRoundTrip(t *testing.T) {
	c := NewInMemoryListingCache(time.Minute)
	shopID := uuid.New()
	items := []taxonomy.MappableItem{{Key: "sale", Label: "Sale"}}

	c.Set(context.Background(), shopID, taxonomy.TypeFlags, items)

	got, ok := c.Get(context.Background(), shopID, taxonomy.TypeFlags)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "sale", got[0].Key)
}

func TestInMemoryListingCache_MissOnUnknownKey(t *testing.T) {
	c := NewInMemoryListingCache(time.Minute)
	shopID := uuid.New()
	c.Set(context.Background(), shopID, taxonomy.TypeFlags, nil)

	// Same shop, different attribute type.
	_, ok := c.Get(context.Background(), shopID, taxonomy.TypeFilteringParameters)
	assert.False(t, ok)

	_, ok = c.Get(context.Background(), uuid.New(), taxonomy.TypeFlags)
	assert.False(t, ok)
}

func TestInMemoryListingCache_ExpiresAfterTTL(t *testing.T) {
	c := NewInMemoryListingCache(time.Millisecond)
	shopID := uuid.New()
	c.Set(context.Background(), shopID, taxonomy.TypeFlags, []taxonomy.MappableItem{{Key: "x"}})

	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(context.Background(), shopID, taxonomy.TypeFlags)
	assert.False(t, ok)
}

func TestInMemoryListingCache_Invalidate(t *testing.T) {
	c := NewInMemoryListingCache(time.Minute)
	shopID := uuid.New()
	c.Set(context.Background(), shopID, taxonomy.TypeVariants, []taxonomy.MappableItem{{Key: "x"}})

	c.Invalidate(context.Background(), shopID, taxonomy.TypeVariants)

	_, ok := c.Get(context.Background(), shopID, taxonomy.TypeVariants)
	assert.False(t, ok)
}
