package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/shared"
)

// CategoryNodeModel is the persistence model for a canonical category node.
type CategoryNodeModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	GUID              string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_nodes_guid"`
	Name              string     `gorm:"type:varchar(255);not null"`
	Slug              string     `gorm:"type:varchar(255)"`
	ParentID          *uuid.UUID `gorm:"type:uuid;index:idx_category_nodes_parent"`
	Position          int        `gorm:"not null;default:0"`
	Description       string     `gorm:"type:text"`
	SecondDescription string     `gorm:"type:text"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryNodeModel) TableName() string {
	return "category_nodes"
}

// ToDomain converts the persistence model to a domain Node.
func (m *CategoryNodeModel) ToDomain() *category.Node {
	return &category.Node{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		GUID:              m.GUID,
		Name:              m.Name,
		Slug:              m.Slug,
		ParentID:          m.ParentID,
		Position:          m.Position,
		Description:       m.Description,
		SecondDescription: m.SecondDescription,
	}
}

// FromDomain populates the persistence model from a domain Node.
func (m *CategoryNodeModel) FromDomain(n *category.Node) {
	m.ID = n.ID
	m.GUID = n.GUID
	m.Name = n.Name
	m.Slug = n.Slug
	m.ParentID = n.ParentID
	m.Position = n.Position
	m.Description = n.Description
	m.SecondDescription = n.SecondDescription
	m.CreatedAt = n.CreatedAt
	m.UpdatedAt = n.UpdatedAt
}

// ShopCategoryNodeModel is the persistence model for a target shop's local
// category node.
type ShopCategoryNodeModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	ShopID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shop_category_nodes_shop_guid,priority:1;index:idx_shop_category_nodes_shop"`
	RemoteGUID string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_shop_category_nodes_shop_guid,priority:2"`
	RemoteID   *string    `gorm:"type:varchar(100)"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Slug       string     `gorm:"type:varchar(255)"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index:idx_shop_category_nodes_parent"`
	Position   int        `gorm:"not null;default:0"`
	Path       string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShopCategoryNodeModel) TableName() string {
	return "shop_category_nodes"
}

// ToDomain converts the persistence model to a domain ShopNode.
func (m *ShopCategoryNodeModel) ToDomain() *category.ShopNode {
	return &category.ShopNode{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ShopID:     m.ShopID,
		RemoteGUID: m.RemoteGUID,
		RemoteID:   m.RemoteID,
		Name:       m.Name,
		Slug:       m.Slug,
		ParentID:   m.ParentID,
		Position:   m.Position,
		Path:       m.Path,
	}
}

// FromDomain populates the persistence model from a domain ShopNode.
func (m *ShopCategoryNodeModel) FromDomain(n *category.ShopNode) {
	m.ID = n.ID
	m.ShopID = n.ShopID
	m.RemoteGUID = n.RemoteGUID
	m.RemoteID = n.RemoteID
	m.Name = n.Name
	m.Slug = n.Slug
	m.ParentID = n.ParentID
	m.Position = n.Position
	m.Path = n.Path
	m.CreatedAt = n.CreatedAt
	m.UpdatedAt = n.UpdatedAt
}

// CategoryMappingModel is the persistence model for a category mapping.
// At most one row per (category_node_id, shop_id).
type CategoryMappingModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	CategoryNodeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_category_mappings_node_shop,priority:1"`
	ShopID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_category_mappings_node_shop,priority:2;index:idx_category_mappings_shop"`
	ShopNodeID     *uuid.UUID `gorm:"type:uuid"`
	Status         string     `gorm:"type:varchar(20);not null;default:'suggested';index:idx_category_mappings_status"`
	Confidence     *float64   `gorm:"type:numeric(4,3)"`
	Source         string     `gorm:"type:varchar(20);not null;default:'manual'"`
	Notes          string     `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryMappingModel) TableName() string {
	return "category_mappings"
}

// ToDomain converts the persistence model to a domain Mapping.
func (m *CategoryMappingModel) ToDomain() *category.Mapping {
	return &category.Mapping{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		CategoryNodeID: m.CategoryNodeID,
		ShopID:         m.ShopID,
		ShopNodeID:     m.ShopNodeID,
		Status:         category.MappingStatus(m.Status),
		Confidence:     m.Confidence,
		Source:         category.MappingSource(m.Source),
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Mapping.
func (m *CategoryMappingModel) FromDomain(cm *category.Mapping) {
	m.ID = cm.ID
	m.CategoryNodeID = cm.CategoryNodeID
	m.ShopID = cm.ShopID
	m.ShopNodeID = cm.ShopNodeID
	m.Status = string(cm.Status)
	m.Confidence = cm.Confidence
	m.Source = string(cm.Source)
	m.Notes = cm.Notes
	m.CreatedAt = cm.CreatedAt
	m.UpdatedAt = cm.UpdatedAt
}
