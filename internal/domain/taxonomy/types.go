package taxonomy

import (
	"github.com/shopsync/backend/internal/domain/shared"
)

// AttributeType identifies one of the remote attribute families the engine
// maps between shops.
type AttributeType string

const (
	TypeFlags               AttributeType = "flags"
	TypeFilteringParameters AttributeType = "filtering_parameters"
	TypeVariants            AttributeType = "variants"
)

// AllAttributeTypes returns every supported attribute type.
func AllAttributeTypes() []AttributeType {
	return []AttributeType{TypeFlags, TypeFilteringParameters, TypeVariants}
}

// ParseAttributeType validates a raw type string.
func ParseAttributeType(raw string) (AttributeType, error) {
	switch AttributeType(raw) {
	case TypeFlags, TypeFilteringParameters, TypeVariants:
		return AttributeType(raw), nil
	default:
		return "", shared.NewValidationError("unknown attribute type %q", raw)
	}
}

// HasValues reports whether items of this type carry nested value options.
// Flags are scalar; the other two families are parameterized.
func (t AttributeType) HasValues() bool {
	return t == TypeFilteringParameters || t == TypeVariants
}

func (t AttributeType) String() string { return string(t) }

// MappableValue is a sub-option of a parameterized attribute, e.g. one
// allowed value of a filtering parameter.
type MappableValue struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Color    string         `json:"color,omitempty"`
	Priority *int           `json:"priority,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// MappableItem is the canonical shape every remote attribute family is
// normalized into. Key is unique within a (shop, type) scope.
type MappableItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Values []MappableValue `json:"values,omitempty"`
	Extra  map[string]any  `json:"extra,omitempty"`
}

// FindValue returns the value with the given key, or nil.
func (i *MappableItem) FindValue(key string) *MappableValue {
	for idx := range i.Values {
		if i.Values[idx].Key == key {
			return &i.Values[idx]
		}
	}
	return nil
}

// ItemIndex builds a key lookup over an item list.
func ItemIndex(items []MappableItem) map[string]*MappableItem {
	idx := make(map[string]*MappableItem, len(items))
	for i := range items {
		idx[items[i].Key] = &items[i]
	}
	return idx
}
