package taxonomy

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// MappingView is the current state of one (master, target, type) mapping
// scope: both merged item sets plus the persisted mapping records.
type MappingView struct {
	MasterShopID uuid.UUID                   `json:"master_shop_id"`
	TargetShopID uuid.UUID                   `json:"target_shop_id"`
	Type         taxonomy.AttributeType      `json:"type"`
	MasterItems  []taxonomy.MappableItem     `json:"master_items"`
	TargetItems  []taxonomy.MappableItem     `json:"target_items"`
	Mappings     []taxonomy.AttributeMapping `json:"mappings"`
}

// SubmittedValue is one value pairing inside a submitted mapping.
type SubmittedValue struct {
	MasterValueKey string `json:"master_value_key"`
	TargetValueKey string `json:"target_value_key"`
}

// SubmittedMapping is one entry of a mapping submission. An empty TargetKey
// clears the mapping for MasterKey. A nil Values slice leaves existing value
// mappings untouched; a non-nil slice replaces them wholesale.
type SubmittedMapping struct {
	MasterKey string           `json:"master_key"`
	TargetKey string           `json:"target_key"`
	Values    []SubmittedValue `json:"values"`
}

// SyncResult reports one cache refresh run.
type SyncResult struct {
	ShopID uuid.UUID                      `json:"shop_id"`
	Counts map[taxonomy.AttributeType]int `json:"counts"`
}
