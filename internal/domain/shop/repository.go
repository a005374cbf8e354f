package shop

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides access to shops.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByCode(ctx context.Context, code string) (*Shop, error)
	// FindMaster returns the shop flagged is_master. With several flagged
	// (bad data), the oldest wins; with none, a NOT_FOUND error is returned.
	FindMaster(ctx context.Context) (*Shop, error)
	FindAll(ctx context.Context) ([]Shop, error)
	Save(ctx context.Context, s *Shop) error
}

// SettingsRepository stores the per-shop settings document. The attribute
// cache (spec: per-shop JSON keyed by attribute type) lives here; it is the
// only at-rest format the engine owns directly. Injected explicitly so no
// component reaches for ambient global configuration.
type SettingsRepository interface {
	// GetDocument returns the raw JSON value stored under key for the shop,
	// or nil when the key has never been written.
	GetDocument(ctx context.Context, shopID uuid.UUID, key string) ([]byte, error)
	// PutDocument replaces the JSON value stored under key for the shop.
	PutDocument(ctx context.Context, shopID uuid.UUID, key string, doc []byte) error
}
