package category

import (
	"context"

	"github.com/google/uuid"
)

// NodeRepository loads canonical category nodes.
type NodeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Node, error)
	FindByGUID(ctx context.Context, guid string) (*Node, error)
	// FindAllWithMapping returns every canonical node with its mapping for
	// the given target shop attached (nil when none exists). One query pass,
	// no per-node lookups.
	FindAllWithMapping(ctx context.Context, shopID uuid.UUID) ([]Node, error)
	FindAll(ctx context.Context) ([]Node, error)
	Save(ctx context.Context, n *Node) error
}

// ShopNodeRepository loads a target shop's local category nodes.
type ShopNodeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShopNode, error)
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]ShopNode, error)
	Save(ctx context.Context, n *ShopNode) error
}

// MappingRepository persists category mappings.
type MappingRepository interface {
	FindByNodeAndShop(ctx context.Context, categoryNodeID, shopID uuid.UUID) (*Mapping, error)
	FindConfirmedByShop(ctx context.Context, shopID uuid.UUID) ([]Mapping, error)
	// Save upserts on (category_node_id, shop_id).
	Save(ctx context.Context, m *Mapping) error
	CountByStatus(ctx context.Context, shopID uuid.UUID) (map[MappingStatus]int, error)
}
