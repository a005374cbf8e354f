package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

// RedisListingCache stores remote attribute listings in redis so every
// instance shares one cache. Failures degrade to cache misses.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisListingCache creates a redis-backed listing cache
func NewRedisListingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisListingCache {
	return &RedisListingCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("listing_cache"),
	}
}

func listingCacheKey(shopID uuid.UUID, typ taxonomy.AttributeType) string {
	return fmt.Sprintf("shopsync:listings:%s:%s", shopID, typ)
}

// Get returns the cached listing, or ok=false on miss or error
func (c *RedisListingCache) Get(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) ([]taxonomy.MappableItem, bool) {
	raw, err := c.client.Get(ctx, listingCacheKey(shopID, typ)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis get failed", zap.Error(err))
		}
		return nil, false
	}
	var items []taxonomy.MappableItem
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("corrupted listing cache entry dropped",
			zap.String("shop_id", shopID.String()),
			zap.String("type", typ.String()),
		)
		c.client.Del(ctx, listingCacheKey(shopID, typ))
		return nil, false
	}
	return items, true
}

// Set stores the listing under (shop, type)
func (c *RedisListingCache) Set(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType, items []taxonomy.MappableItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("failed to encode listing cache entry", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listingCacheKey(shopID, typ), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.Error(err))
	}
}

// Invalidate drops the entry for (shop, type)
func (c *RedisListingCache) Invalidate(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) {
	if err := c.client.Del(ctx, listingCacheKey(shopID, typ)).Err(); err != nil {
		c.logger.Warn("redis del failed", zap.Error(err))
	}
}

// Ensure RedisListingCache implements ListingCache
var _ integration.ListingCache = (*RedisListingCache)(nil)
