package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewListingCache builds the listing cache selected by configuration.
func NewListingCache(cfg *config.CatalogConfig, redisClient *redis.Client, logger *zap.Logger) (integration.ListingCache, error) {
	switch cfg.ListingCacheBackend {
	case "memory":
		return NewInMemoryListingCache(cfg.ListingCacheTTL), nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("listing cache backend is redis but no redis client is configured")
		}
		return NewRedisListingCache(redisClient, cfg.ListingCacheTTL, logger), nil
	default:
		return nil, fmt.Errorf("unknown listing cache backend %q", cfg.ListingCacheBackend)
	}
}

// NewRedisClient creates a redis client from configuration.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
