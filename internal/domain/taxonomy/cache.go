package taxonomy

import (
	"encoding/json"

	"github.com/shopsync/backend/internal/domain/shared"
)

// SettingsKeyAttributeCache is the shop-settings key holding the attribute
// cache document.
const SettingsKeyAttributeCache = "attribute_cache"

// CacheDocument is the persisted per-shop attribute snapshot, keyed by type.
// It is never authoritative; a fresh fetch merged on top always supersedes it.
type CacheDocument map[AttributeType][]MappableItem

// DecodeCacheDocument parses the stored settings value. A nil or empty
// payload yields an empty document.
func DecodeCacheDocument(raw []byte) (CacheDocument, error) {
	if len(raw) == 0 {
		return CacheDocument{}, nil
	}
	var doc CacheDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, shared.NewDomainError(shared.CodeInternal, "attribute cache document is corrupted: "+err.Error())
	}
	if doc == nil {
		doc = CacheDocument{}
	}
	return doc, nil
}

// Encode serializes the document for storage.
func (d CacheDocument) Encode() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInternal, "cannot encode attribute cache document: "+err.Error())
	}
	return raw, nil
}

// ItemsFor returns the cached items for one type, never nil.
func (d CacheDocument) ItemsFor(typ AttributeType) []MappableItem {
	if items, ok := d[typ]; ok {
		return items
	}
	return []MappableItem{}
}
