package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/product"
	"github.com/shopsync/backend/internal/domain/shared"
)

// ProductModel is the persistence model for a master-shop product.
type ProductModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShopID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_shop_guid,priority:1;index:idx_products_shop"`
	RemoteGUID        string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_shop_guid,priority:2"`
	Code              string          `gorm:"type:varchar(100);index:idx_products_code"`
	Name              string          `gorm:"type:varchar(500);not null"`
	Price             decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
	Currency          string          `gorm:"type:varchar(3)"`
	DefaultCategoryID *uuid.UUID      `gorm:"type:uuid;index:idx_products_default_category"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *product.Product {
	return &product.Product{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ShopID:            m.ShopID,
		RemoteGUID:        m.RemoteGUID,
		Code:              m.Code,
		Name:              m.Name,
		Price:             m.Price,
		Currency:          m.Currency,
		DefaultCategoryID: m.DefaultCategoryID,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *product.Product) {
	m.ID = p.ID
	m.ShopID = p.ShopID
	m.RemoteGUID = p.RemoteGUID
	m.Code = p.Code
	m.Name = p.Name
	m.Price = p.Price
	m.Currency = p.Currency
	m.DefaultCategoryID = p.DefaultCategoryID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// ProductOverlayModel records a product's state in one target shop.
type ProductOverlayModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_overlays_product_shop,priority:1"`
	ShopID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_overlays_product_shop,priority:2;index:idx_product_overlays_shop"`
	RemoteGUID    string     `gorm:"type:varchar(100)"`
	DefaultNodeID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductOverlayModel) TableName() string {
	return "product_shop_overlays"
}

// ToDomain converts the persistence model to a domain ShopOverlay.
func (m *ProductOverlayModel) ToDomain() *product.ShopOverlay {
	return &product.ShopOverlay{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ProductID:     m.ProductID,
		ShopID:        m.ShopID,
		RemoteGUID:    m.RemoteGUID,
		DefaultNodeID: m.DefaultNodeID,
	}
}

// FromDomain populates the persistence model from a domain ShopOverlay.
func (m *ProductOverlayModel) FromDomain(o *product.ShopOverlay) {
	m.ID = o.ID
	m.ProductID = o.ProductID
	m.ShopID = o.ShopID
	m.RemoteGUID = o.RemoteGUID
	m.DefaultNodeID = o.DefaultNodeID
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}
