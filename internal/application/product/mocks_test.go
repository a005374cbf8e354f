package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/product"
	"github.com/shopsync/backend/internal/domain/shared"
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

type mockProductRepository struct{ mock.Mock }

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepository) FindByShopPaged(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]product.Product, int64, error) {
	args := m.Called(ctx, shopID, filter)
	if p := args.Get(0); p != nil {
		return p.([]product.Product), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepository) FindByShop(ctx context.Context, shopID uuid.UUID, search string) ([]product.Product, error) {
	args := m.Called(ctx, shopID, search)
	if p := args.Get(0); p != nil {
		return p.([]product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepository) Save(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

type mockOverlayRepository struct{ mock.Mock }

func (m *mockOverlayRepository) FindByProductAndShop(ctx context.Context, productID, shopID uuid.UUID) (*product.ShopOverlay, error) {
	args := m.Called(ctx, productID, shopID)
	if o := args.Get(0); o != nil {
		return o.(*product.ShopOverlay), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOverlayRepository) FindByShop(ctx context.Context, shopID uuid.UUID) (map[uuid.UUID]*product.ShopOverlay, error) {
	args := m.Called(ctx, shopID)
	if o := args.Get(0); o != nil {
		return o.(map[uuid.UUID]*product.ShopOverlay), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOverlayRepository) Save(ctx context.Context, o *product.ShopOverlay) error {
	return m.Called(ctx, o).Error(0)
}

type mockNodeRepository struct{ mock.Mock }

func (m *mockNodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Node, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*category.Node), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNodeRepository) FindByGUID(ctx context.Context, guid string) (*category.Node, error) {
	args := m.Called(ctx, guid)
	if n := args.Get(0); n != nil {
		return n.(*category.Node), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNodeRepository) FindAllWithMapping(ctx context.Context, shopID uuid.UUID) ([]category.Node, error) {
	args := m.Called(ctx, shopID)
	if n := args.Get(0); n != nil {
		return n.([]category.Node), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNodeRepository) FindAll(ctx context.Context) ([]category.Node, error) {
	args := m.Called(ctx)
	if n := args.Get(0); n != nil {
		return n.([]category.Node), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNodeRepository) Save(ctx context.Context, n *category.Node) error {
	return m.Called(ctx, n).Error(0)
}

type mockShopNodeRepository struct{ mock.Mock }

func (m *mockShopNodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.ShopNode, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*category.ShopNode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopNodeRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]category.ShopNode, error) {
	args := m.Called(ctx, shopID)
	if n := args.Get(0); n != nil {
		return n.([]category.ShopNode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopNodeRepository) Save(ctx context.Context, n *category.ShopNode) error {
	return m.Called(ctx, n).Error(0)
}

type mockCategoryMappingRepository struct{ mock.Mock }

func (m *mockCategoryMappingRepository) FindByNodeAndShop(ctx context.Context, categoryNodeID, shopID uuid.UUID) (*category.Mapping, error) {
	args := m.Called(ctx, categoryNodeID, shopID)
	if r := args.Get(0); r != nil {
		return r.(*category.Mapping), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryMappingRepository) FindConfirmedByShop(ctx context.Context, shopID uuid.UUID) ([]category.Mapping, error) {
	args := m.Called(ctx, shopID)
	if r := args.Get(0); r != nil {
		return r.([]category.Mapping), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryMappingRepository) Save(ctx context.Context, mapping *category.Mapping) error {
	return m.Called(ctx, mapping).Error(0)
}

func (m *mockCategoryMappingRepository) CountByStatus(ctx context.Context, shopID uuid.UUID) (map[category.MappingStatus]int, error) {
	args := m.Called(ctx, shopID)
	if r := args.Get(0); r != nil {
		return r.(map[category.MappingStatus]int), args.Error(1)
	}
	return nil, args.Error(1)
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

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
