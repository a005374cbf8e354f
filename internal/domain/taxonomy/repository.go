package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

// MappingScope identifies one (master shop, target shop, type) mapping set.
type MappingScope struct {
	MasterShopID uuid.UUID
	TargetShopID uuid.UUID
	Type         AttributeType
}

// AttributeMappingRepository persists attribute mappings with their nested
// value mappings. Implementations must return aggregates with Values loaded.
type AttributeMappingRepository interface {
	FindByScope(ctx context.Context, scope MappingScope) ([]AttributeMapping, error)
	FindByMasterKey(ctx context.Context, scope MappingScope, masterKey string) (*AttributeMapping, error)
	// FindByTargetKey returns the mapping currently claiming targetKey in
	// scope, or nil when the key is unclaimed.
	FindByTargetKey(ctx context.Context, scope MappingScope, targetKey string) (*AttributeMapping, error)
	// Save upserts the mapping row and replaces its value rows with
	// m.Values in the same transaction.
	Save(ctx context.Context, m *AttributeMapping) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteOutsideMasterKeys removes every mapping in scope whose master
	// key is absent from keep. Implements the full-replace sweep.
	DeleteOutsideMasterKeys(ctx context.Context, scope MappingScope, keep []string) (int64, error)
}
