package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Repository provides access to master-shop products.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByShopPaged returns one page of the shop's products matching the
	// filter, plus the total match count.
	FindByShopPaged(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	// FindByShop streams the whole filtered set, used by the validator's
	// stats sweep. Search applies as in FindByShopPaged.
	FindByShop(ctx context.Context, shopID uuid.UUID, search string) ([]Product, error)
	Save(ctx context.Context, p *Product) error
}

// OverlayRepository provides access to per-shop product overlays.
type OverlayRepository interface {
	FindByProductAndShop(ctx context.Context, productID, shopID uuid.UUID) (*ShopOverlay, error)
	// FindByShop returns all overlays for a shop keyed by product id.
	FindByShop(ctx context.Context, shopID uuid.UUID) (map[uuid.UUID]*ShopOverlay, error)
	Save(ctx context.Context, o *ShopOverlay) error
}
