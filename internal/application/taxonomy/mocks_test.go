package taxonomy

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"github.com/stretchr/testify/mock"
)

type mockShopRepository struct{ mock.Mock }

func (m *mockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*shop.Shop), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepository) FindByCode(ctx context.Context, code string) (*shop.Shop, error) {
	args := m.Called(ctx, code)
	if s := args.Get(0); s != nil {
		return s.(*shop.Shop), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepository) FindMaster(ctx context.Context) (*shop.Shop, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*shop.Shop), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepository) FindAll(ctx context.Context) ([]shop.Shop, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]shop.Shop), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

type mockSettingsRepository struct{ mock.Mock }

func (m *mockSettingsRepository) GetDocument(ctx context.Context, shopID uuid.UUID, key string) ([]byte, error) {
	args := m.Called(ctx, shopID, key)
	if raw := args.Get(0); raw != nil {
		return raw.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingsRepository) PutDocument(ctx context.Context, shopID uuid.UUID, key string, doc []byte) error {
	return m.Called(ctx, shopID, key, doc).Error(0)
}

type mockMappingRepository struct{ mock.Mock }

func (m *mockMappingRepository) FindByScope(ctx context.Context, scope taxonomy.MappingScope) ([]taxonomy.AttributeMapping, error) {
	args := m.Called(ctx, scope)
	if r := args.Get(0); r != nil {
		return r.([]taxonomy.AttributeMapping), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMappingRepository) FindByMasterKey(ctx context.Context, scope taxonomy.MappingScope, masterKey string) (*taxonomy.AttributeMapping, error) {
	args := m.Called(ctx, scope, masterKey)
	if r := args.Get(0); r != nil {
		return r.(*taxonomy.AttributeMapping), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMappingRepository) FindByTargetKey(ctx context.Context, scope taxonomy.MappingScope, targetKey string) (*taxonomy.AttributeMapping, error) {
	args := m.Called(ctx, scope, targetKey)
	if r := args.Get(0); r != nil {
		return r.(*taxonomy.AttributeMapping), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMappingRepository) Save(ctx context.Context, am *taxonomy.AttributeMapping) error {
	return m.Called(ctx, am).Error(0)
}

func (m *mockMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMappingRepository) DeleteOutsideMasterKeys(ctx context.Context, scope taxonomy.MappingScope, keep []string) (int64, error) {
	args := m.Called(ctx, scope, keep)
	return args.Get(0).(int64), args.Error(1)
}

type mockCatalogClient struct{ mock.Mock }

func (m *mockCatalogClient) ListFlags(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error) {
	args := m.Called(ctx, s)
	if r := args.Get(0); r != nil {
		return r.([]taxonomy.MappableItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogClient) ListFilteringParameters(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error) {
	args := m.Called(ctx, s)
	if r := args.Get(0); r != nil {
		return r.([]taxonomy.MappableItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogClient) ListVariantParameters(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error) {
	args := m.Called(ctx, s)
	if r := args.Get(0); r != nil {
		return r.([]taxonomy.MappableItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogClient) ListProducts(ctx context.Context, s *shop.Shop) ([]integration.ProductDetail, error) {
	args := m.Called(ctx, s)
	if r := args.Get(0); r != nil {
		return r.([]integration.ProductDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogClient) UpdateCategory(ctx context.Context, s *shop.Shop, remoteCategoryID string, update integration.CategoryUpdate) error {
	return m.Called(ctx, s, remoteCategoryID, update).Error(0)
}

func (m *mockCatalogClient) SetProductDefaultCategory(ctx context.Context, s *shop.Shop, productGUID, categoryGUID string) error {
	return m.Called(ctx, s, productGUID, categoryGUID).Error(0)
}

type mockOracle struct{ mock.Mock }

func (m *mockOracle) SuggestCategoryMappings(ctx context.Context, req integration.CategorySuggestionRequest) ([]integration.CategorySuggestion, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.([]integration.CategorySuggestion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOracle) SuggestAttributeMappings(ctx context.Context, master, target []taxonomy.MappableItem) ([]integration.AttributePairing, error) {
	args := m.Called(ctx, master, target)
	if r := args.Get(0); r != nil {
		return r.([]integration.AttributePairing), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockListingCache struct{ mock.Mock }

func (m *mockListingCache) Get(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) ([]taxonomy.MappableItem, bool) {
	args := m.Called(ctx, shopID, typ)
	if r := args.Get(0); r != nil {
		return r.([]taxonomy.MappableItem), args.Bool(1)
	}
	return nil, args.Bool(1)
}

func (m *mockListingCache) Set(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType, items []taxonomy.MappableItem) {
	m.Called(ctx, shopID, typ, items)
}

func (m *mockListingCache) Invalidate(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) {
	m.Called(ctx, shopID, typ)
}

// passthroughTx runs the function inline; tests assert on repository calls.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
