package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// AttributeMappingModel is the persistence model for AttributeMapping.
// Uniqueness of (master_shop_id, target_shop_id, type, master_key) is
// enforced at the schema level; a second partial unique index over non-null
// target keys keeps one-target-per-master intact even when saves race. The
// save algorithm still releases a previous claimant first, so the index only
// trips on genuine conflicts.
type AttributeMappingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	MasterShopID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attr_mappings_scope_master,priority:1;uniqueIndex:idx_attr_mappings_scope_target,priority:1"`
	TargetShopID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attr_mappings_scope_master,priority:2;uniqueIndex:idx_attr_mappings_scope_target,priority:2"`
	Type         string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_attr_mappings_scope_master,priority:3;uniqueIndex:idx_attr_mappings_scope_target,priority:3"`
	MasterKey    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_attr_mappings_scope_master,priority:4"`
	MasterLabel  string    `gorm:"type:varchar(500)"`
	TargetKey    *string   `gorm:"type:varchar(255);uniqueIndex:idx_attr_mappings_scope_target,priority:4,where:target_key IS NOT NULL"`
	TargetLabel  *string   `gorm:"type:varchar(500)"`
	MetaJSON     string    `gorm:"type:jsonb;column:meta"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Values []AttributeValueMappingModel `gorm:"foreignKey:AttributeMappingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AttributeMappingModel) TableName() string {
	return "attribute_mappings"
}

// ToDomain converts the persistence model to a domain AttributeMapping.
func (m *AttributeMappingModel) ToDomain() *taxonomy.AttributeMapping {
	mapping := &taxonomy.AttributeMapping{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		MasterShopID: m.MasterShopID,
		TargetShopID: m.TargetShopID,
		Type:         taxonomy.AttributeType(m.Type),
		MasterKey:    m.MasterKey,
		MasterLabel:  m.MasterLabel,
		TargetKey:    m.TargetKey,
		TargetLabel:  m.TargetLabel,
	}
	if m.MetaJSON != "" {
		var meta map[string]any
		if err := json.Unmarshal([]byte(m.MetaJSON), &meta); err == nil {
			mapping.Meta = meta
		}
	}
	mapping.Values = make([]taxonomy.AttributeValueMapping, 0, len(m.Values))
	for i := range m.Values {
		mapping.Values = append(mapping.Values, *m.Values[i].ToDomain())
	}
	return mapping
}

// FromDomain populates the persistence model from a domain AttributeMapping.
func (m *AttributeMappingModel) FromDomain(am *taxonomy.AttributeMapping) {
	m.ID = am.ID
	m.MasterShopID = am.MasterShopID
	m.TargetShopID = am.TargetShopID
	m.Type = string(am.Type)
	m.MasterKey = am.MasterKey
	m.MasterLabel = am.MasterLabel
	m.TargetKey = am.TargetKey
	m.TargetLabel = am.TargetLabel
	m.CreatedAt = am.CreatedAt
	m.UpdatedAt = am.UpdatedAt
	m.MetaJSON = marshalMeta(am.Meta)

	m.Values = make([]AttributeValueMappingModel, 0, len(am.Values))
	for i := range am.Values {
		var vm AttributeValueMappingModel
		vm.FromDomain(&am.Values[i])
		vm.AttributeMappingID = am.ID
		m.Values = append(m.Values, vm)
	}
}

// AttributeValueMappingModel is the persistence model for AttributeValueMapping.
type AttributeValueMappingModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	AttributeMappingID uuid.UUID `gorm:"type:uuid;not null;index:idx_attr_value_mappings_parent"`
	MasterValueKey     string    `gorm:"type:varchar(255);not null"`
	MasterValueLabel   string    `gorm:"type:varchar(500)"`
	TargetValueKey     *string   `gorm:"type:varchar(255)"`
	TargetValueLabel   *string   `gorm:"type:varchar(500)"`
	MetaJSON           string    `gorm:"type:jsonb;column:meta"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttributeValueMappingModel) TableName() string {
	return "attribute_value_mappings"
}

// ToDomain converts the persistence model to a domain AttributeValueMapping.
func (m *AttributeValueMappingModel) ToDomain() *taxonomy.AttributeValueMapping {
	vm := &taxonomy.AttributeValueMapping{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AttributeMappingID: m.AttributeMappingID,
		MasterValueKey:     m.MasterValueKey,
		MasterValueLabel:   m.MasterValueLabel,
		TargetValueKey:     m.TargetValueKey,
		TargetValueLabel:   m.TargetValueLabel,
	}
	if m.MetaJSON != "" {
		var meta map[string]any
		if err := json.Unmarshal([]byte(m.MetaJSON), &meta); err == nil {
			vm.Meta = meta
		}
	}
	return vm
}

// FromDomain populates the persistence model from a domain AttributeValueMapping.
func (m *AttributeValueMappingModel) FromDomain(vm *taxonomy.AttributeValueMapping) {
	m.ID = vm.ID
	m.AttributeMappingID = vm.AttributeMappingID
	m.MasterValueKey = vm.MasterValueKey
	m.MasterValueLabel = vm.MasterValueLabel
	m.TargetValueKey = vm.TargetValueKey
	m.TargetValueLabel = vm.TargetValueLabel
	m.CreatedAt = vm.CreatedAt
	m.UpdatedAt = vm.UpdatedAt
	m.MetaJSON = marshalMeta(vm.Meta)
}

func marshalMeta(meta map[string]any) string {
	if len(meta) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
