package category

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// MappingStatus tracks the review workflow of one category pairing.
type MappingStatus string

const (
	StatusSuggested MappingStatus = "suggested"
	StatusConfirmed MappingStatus = "confirmed"
	StatusRejected  MappingStatus = "rejected"
)

// MappingSource records who produced the pairing.
type MappingSource string

const (
	SourceManual MappingSource = "manual"
	SourceAI     MappingSource = "ai"
)

// Mapping links one canonical category to at most one target-shop category.
// Identity is (category_node_id, shop_id). Only confirmed mappings are
// treated as ground truth by the default-category validator.
type Mapping struct {
	shared.BaseEntity
	CategoryNodeID uuid.UUID
	ShopID         uuid.UUID
	ShopNodeID     *uuid.UUID
	Status         MappingStatus
	Confidence     *float64
	Source         MappingSource
	Notes          string
}

// NewMapping creates a mapping in the suggested state.
func NewMapping(categoryNodeID, shopID uuid.UUID) (*Mapping, error) {
	if categoryNodeID == uuid.Nil || shopID == uuid.Nil {
		return nil, shared.NewValidationError("category mapping requires node and shop ids")
	}
	return &Mapping{
		BaseEntity:     shared.NewBaseEntity(),
		CategoryNodeID: categoryNodeID,
		ShopID:         shopID,
		Status:         StatusSuggested,
		Source:         SourceManual,
	}, nil
}

// Confirm pins the mapping to a shop node as operator-verified ground truth.
// Idempotent; repeated calls only refresh the timestamp.
func (m *Mapping) Confirm(shopNodeID uuid.UUID, notes string) error {
	if shopNodeID == uuid.Nil {
		return shared.NewValidationError("confirm requires a shop category node")
	}
	one := 1.0
	m.ShopNodeID = &shopNodeID
	m.Status = StatusConfirmed
	m.Confidence = &one
	m.Source = SourceManual
	if notes != "" {
		m.Notes = notes
	}
	m.Touch()
	return nil
}

// Reject marks the canonical node as having no valid counterpart in the shop
// and drops any previous pairing. Idempotent.
func (m *Mapping) Reject(notes string) {
	m.ShopNodeID = nil
	m.Status = StatusRejected
	m.Confidence = nil
	m.Source = SourceManual
	if notes != "" {
		m.Notes = notes
	}
	m.Touch()
}

// IsConfirmed reports whether the mapping is usable as ground truth.
func (m *Mapping) IsConfirmed() bool {
	return m.Status == StatusConfirmed && m.ShopNodeID != nil
}
