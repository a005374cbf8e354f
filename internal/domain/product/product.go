package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Product is a master-shop catalog item. Only its classification state
// matters to this engine; price and name are display snapshots taken from the
// remote catalog.
type Product struct {
	shared.BaseEntity
	ShopID            uuid.UUID
	RemoteGUID        string
	Code              string
	Name              string
	Price             decimal.Decimal
	Currency          string
	DefaultCategoryID *uuid.UUID
}

// New creates a master-shop product.
func New(shopID uuid.UUID, remoteGUID, code, name string) (*Product, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewValidationError("product requires a shop id")
	}
	if remoteGUID == "" {
		return nil, shared.NewValidationError("product remote guid cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("product name cannot be empty")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		RemoteGUID: remoteGUID,
		Code:       code,
		Name:       name,
		Price:      decimal.Zero,
	}, nil
}

// SetPrice updates the price snapshot.
func (p *Product) SetPrice(amount decimal.Decimal, currency string) {
	p.Price = amount
	p.Currency = currency
	p.Touch()
}

// AssignDefaultCategory files the product under a canonical category.
func (p *Product) AssignDefaultCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewValidationError("default category id is required")
	}
	p.DefaultCategoryID = &categoryID
	p.Touch()
	return nil
}

// ClearDefaultCategory removes the master default category.
func (p *Product) ClearDefaultCategory() {
	p.DefaultCategoryID = nil
	p.Touch()
}

// BelongsTo reports whether the product lives in the given shop.
func (p *Product) BelongsTo(shopID uuid.UUID) bool {
	return p.ShopID == shopID
}

// ShopOverlay records a product's state in one target shop, most importantly
// which local category it is actually filed under there.
type ShopOverlay struct {
	shared.BaseEntity
	ProductID     uuid.UUID
	ShopID        uuid.UUID
	RemoteGUID    string
	DefaultNodeID *uuid.UUID
}

// NewShopOverlay creates an overlay for a product in a target shop.
func NewShopOverlay(productID, shopID uuid.UUID) (*ShopOverlay, error) {
	if productID == uuid.Nil || shopID == uuid.Nil {
		return nil, shared.NewValidationError("overlay requires product and shop ids")
	}
	return &ShopOverlay{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ShopID:     shopID,
	}, nil
}

// AssignDefaultNode files the product under a shop-local category.
func (o *ShopOverlay) AssignDefaultNode(nodeID uuid.UUID) error {
	if nodeID == uuid.Nil {
		return shared.NewValidationError("shop category node id is required")
	}
	o.DefaultNodeID = &nodeID
	o.Touch()
	return nil
}

// ClearDefaultNode removes the shop-side default category.
func (o *ShopOverlay) ClearDefaultNode() {
	o.DefaultNodeID = nil
	o.Touch()
}
