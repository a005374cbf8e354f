package taxonomy

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// AttributeMapping pairs one master-shop attribute with at most one target
// attribute of the same type. Identity within the store is
// (master_shop_id, target_shop_id, type, master_key); within that scope each
// target key is claimed by at most one master key.
type AttributeMapping struct {
	shared.BaseEntity
	MasterShopID uuid.UUID
	TargetShopID uuid.UUID
	Type         AttributeType
	MasterKey    string
	MasterLabel  string
	TargetKey    *string
	TargetLabel  *string
	Meta         map[string]any
	Values       []AttributeValueMapping
}

// NewAttributeMapping creates an unpaired mapping for a master attribute.
func NewAttributeMapping(masterShopID, targetShopID uuid.UUID, typ AttributeType, masterKey, masterLabel string) (*AttributeMapping, error) {
	if masterShopID == uuid.Nil || targetShopID == uuid.Nil {
		return nil, shared.NewValidationError("mapping requires both shop ids")
	}
	if masterShopID == targetShopID {
		return nil, shared.NewValidationError("master and target shop must differ")
	}
	if masterKey == "" {
		return nil, shared.NewValidationError("master key cannot be empty")
	}
	return &AttributeMapping{
		BaseEntity:   shared.NewBaseEntity(),
		MasterShopID: masterShopID,
		TargetShopID: targetShopID,
		Type:         typ,
		MasterKey:    masterKey,
		MasterLabel:  masterLabel,
	}, nil
}

// Scope returns the mapping's uniqueness scope.
func (m *AttributeMapping) Scope() MappingScope {
	return MappingScope{
		MasterShopID: m.MasterShopID,
		TargetShopID: m.TargetShopID,
		Type:         m.Type,
	}
}

// SetTarget assigns the target attribute and refreshes the label snapshot.
func (m *AttributeMapping) SetTarget(key, label string) error {
	if key == "" {
		return shared.NewValidationError("target key cannot be empty")
	}
	m.TargetKey = &key
	m.TargetLabel = &label
	m.Touch()
	return nil
}

// ClearTarget releases the target claim without deleting the row.
func (m *AttributeMapping) ClearTarget() {
	m.TargetKey = nil
	m.TargetLabel = nil
	m.Values = nil
	m.Touch()
}

// RefreshMasterLabel re-snapshots the master label from the current item set.
func (m *AttributeMapping) RefreshMasterLabel(label string) {
	if label != "" && label != m.MasterLabel {
		m.MasterLabel = label
		m.Touch()
	}
}

// HasTarget reports whether the mapping currently claims a target key.
func (m *AttributeMapping) HasTarget() bool {
	return m.TargetKey != nil && *m.TargetKey != ""
}

// ReplaceValues swaps the nested value mappings wholesale. Duplicate target
// value keys are dropped, first submission wins. The caller has already
// filtered entries against the current item sets.
func (m *AttributeMapping) ReplaceValues(values []AttributeValueMapping) error {
	if len(values) > 0 && !m.Type.HasValues() {
		return shared.NewValidationError("attribute type %s does not carry value mappings", m.Type)
	}
	claimed := make(map[string]struct{}, len(values))
	kept := make([]AttributeValueMapping, 0, len(values))
	for _, v := range values {
		if v.TargetValueKey != nil && *v.TargetValueKey != "" {
			if _, dup := claimed[*v.TargetValueKey]; dup {
				continue
			}
			claimed[*v.TargetValueKey] = struct{}{}
		}
		v.AttributeMappingID = m.ID
		kept = append(kept, v)
	}
	m.Values = kept
	m.Touch()
	return nil
}

// AttributeValueMapping pairs one master value option with at most one target
// value option under its parent AttributeMapping. Rebuilt wholesale whenever
// the parent's value list is resubmitted.
type AttributeValueMapping struct {
	shared.BaseEntity
	AttributeMappingID uuid.UUID
	MasterValueKey     string
	MasterValueLabel   string
	TargetValueKey     *string
	TargetValueLabel   *string
	Meta               map[string]any
}

// NewAttributeValueMapping creates a value pairing under a parent mapping.
func NewAttributeValueMapping(masterKey, masterLabel string, targetKey, targetLabel *string) (AttributeValueMapping, error) {
	if masterKey == "" {
		return AttributeValueMapping{}, shared.NewValidationError("master value key cannot be empty")
	}
	return AttributeValueMapping{
		BaseEntity:       shared.NewBaseEntity(),
		MasterValueKey:   masterKey,
		MasterValueLabel: masterLabel,
		TargetValueKey:   targetKey,
		TargetValueLabel: targetLabel,
	}, nil
}
