package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
)

// ShopModel is the persistence model for the Shop domain entity.
type ShopModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_shops_code"`
	Name        string    `gorm:"type:varchar(255);not null"`
	URL         string    `gorm:"type:varchar(500)"`
	IsMaster    bool      `gorm:"not null;default:false;index:idx_shops_is_master"`
	APITokenRef string    `gorm:"type:varchar(255);column:api_token_ref"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop entity.
func (m *ShopModel) ToDomain() *shop.Shop {
	return &shop.Shop{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Code:        m.Code,
		Name:        m.Name,
		URL:         m.URL,
		IsMaster:    m.IsMaster,
		APITokenRef: m.APITokenRef,
	}
}

// FromDomain populates the persistence model from a domain Shop entity.
func (m *ShopModel) FromDomain(s *shop.Shop) {
	m.ID = s.ID
	m.Code = s.Code
	m.Name = s.Name
	m.URL = s.URL
	m.IsMaster = s.IsMaster
	m.APITokenRef = s.APITokenRef
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}

// ShopSettingModel stores one per-shop settings document. The attribute cache
// lives under key "attribute_cache".
type ShopSettingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_settings_shop_key,priority:1"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_shop_settings_shop_key,priority:2"`
	Value     string    `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShopSettingModel) TableName() string {
	return "shop_settings"
}
