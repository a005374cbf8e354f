package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/product"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	shops     *mockShopRepository
	products  *mockProductRepository
	overlays  *mockOverlayRepository
	nodes     *mockNodeRepository
	shopNodes *mockShopNodeRepository
	mappings  *mockCategoryMappingRepository
	catalog   *mockCatalogClient
	svc       *Service
	master    *shop.Shop
	target    *shop.Shop
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	master, err := shop.New("master", "Master Shop", true)
	require.NoError(t, err)
	target, err := shop.New("target", "Target Shop", false)
	require.NoError(t, err)

	f := &productFixture{
		shops:     &mockShopRepository{},
		products:  &mockProductRepository{},
		overlays:  &mockOverlayRepository{},
		nodes:     &mockNodeRepository{},
		shopNodes: &mockShopNodeRepository{},
		mappings:  &mockCategoryMappingRepository{},
		catalog:   &mockCatalogClient{},
		master:    master,
		target:    target,
	}
	f.svc = NewService(
		f.shops, f.products, f.overlays,
		f.nodes, f.shopNodes, f.mappings,
		f.catalog, passthroughTx{}, zap.NewNop(),
	)
	return f
}

func newMasterProduct(t *testing.T, shopID uuid.UUID, name string) product.Product {
	t.Helper()
	p, err := product.New(shopID, uuid.NewString(), "SKU-"+name, name)
	require.NoError(t, err)
	return *p
}

func confirmedMapping(t *testing.T, categoryNodeID, shopID, shopNodeID uuid.UUID) category.Mapping {
	t.Helper()
	m, err := category.NewMapping(categoryNodeID, shopID)
	require.NoError(t, err)
	require.NoError(t, m.Confirm(shopNodeID, ""))
	return *m
}

func TestImportProducts_CreatesAndUpdatesSnapshots(t *testing.T) {
	f := newProductFixture(t)
	known := newMasterProduct(t, f.master.ID, "shirt")

	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.catalog.On("ListProducts", mock.Anything, f.master).Return([]integration.ProductDetail{
		{RemoteGUID: known.RemoteGUID, Code: "SKU-1", Name: "Shirt v2", Price: decimal.RequireFromString("199.90"), Currency: "CZK"},
		{RemoteGUID: "fresh-guid", Code: "SKU-2", Name: "Socks", Price: decimal.RequireFromString("49.50"), Currency: "CZK"},
	}, nil)
	f.products.On("FindByShop", mock.Anything, f.master.ID, "").Return([]product.Product{known}, nil)
	f.products.On("Save", mock.Anything, mock.MatchedBy(func(p *product.Product) bool {
		return p.RemoteGUID == known.RemoteGUID && p.Name == "Shirt v2" &&
			p.Price.Equal(decimal.RequireFromString("199.90")) && p.Currency == "CZK"
	})).Return(nil)
	f.products.On("Save", mock.Anything, mock.MatchedBy(func(p *product.Product) bool {
		return p.RemoteGUID == "fresh-guid" && p.ShopID == f.master.ID &&
			p.Price.Equal(decimal.RequireFromString("49.50"))
	})).Return(nil)

	result, err := f.svc.ImportProducts(context.Background(), f.master.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	f.products.AssertExpectations(t)
}

func TestImportProducts_SeedsMasterDefaultCategory(t *testing.T) {
	f := newProductFixture(t)
	node, err := category.NewNode("cat-guid-1", "Shirts", "shirts", nil, 0)
	require.NoError(t, err)

	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.catalog.On("ListProducts", mock.Anything, f.master).Return([]integration.ProductDetail{
		{RemoteGUID: "g1", Name: "Shirt", Price: decimal.Zero, DefaultCategoryGUID: "cat-guid-1"},
		{RemoteGUID: "g2", Name: "Mystery", Price: decimal.Zero, DefaultCategoryGUID: "unknown-guid"},
	}, nil)
	f.products.On("FindByShop", mock.Anything, f.master.ID, "").Return([]product.Product{}, nil)
	f.nodes.On("FindByGUID", mock.Anything, "cat-guid-1").Return(node, nil)
	f.nodes.On("FindByGUID", mock.Anything, "unknown-guid").
		Return(nil, shared.NewNotFoundError("category with guid %q not found", "unknown-guid"))
	f.products.On("Save", mock.Anything, mock.MatchedBy(func(p *product.Product) bool {
		return p.RemoteGUID == "g1" && p.DefaultCategoryID != nil && *p.DefaultCategoryID == node.ID
	})).Return(nil)
	// An unresolvable remote category is not an error; the product just
	// stays unassigned.
	f.products.On("Save", mock.Anything, mock.MatchedBy(func(p *product.Product) bool {
		return p.RemoteGUID == "g2" && p.DefaultCategoryID == nil
	})).Return(nil)

	result, err := f.svc.ImportProducts(context.Background(), f.master.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	f.products.AssertExpectations(t)
}

func TestImportProducts_KeepsLocalAssignment(t *testing.T) {
	f := newProductFixture(t)
	assigned := newMasterProduct(t, f.master.ID, "shirt")
	localCategory := uuid.New()
	require.NoError(t, assigned.AssignDefaultCategory(localCategory))

	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.catalog.On("ListProducts", mock.Anything, f.master).Return([]integration.ProductDetail{
		{RemoteGUID: assigned.RemoteGUID, Name: "Shirt", Price: decimal.Zero, DefaultCategoryGUID: "remote-cat-guid"},
	}, nil)
	f.products.On("FindByShop", mock.Anything, f.master.ID, "").Return([]product.Product{assigned}, nil)
	f.products.On("Save", mock.Anything, mock.MatchedBy(func(p *product.Product) bool {
		return p.DefaultCategoryID != nil && *p.DefaultCategoryID == localCategory
	})).Return(nil)

	_, err := f.svc.ImportProducts(context.Background(), f.master.ID)
	require.NoError(t, err)
	f.nodes.AssertNotCalled(t, "FindByGUID", mock.Anything, mock.Anything)
}

func TestImportProducts_TranslatesListingErrors(t *testing.T) {
	f := newProductFixture(t)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.catalog.On("ListProducts", mock.Anything, f.target).
		Return(nil, fmt.Errorf("status 502: %w", integration.ErrPlatformUnavailable))

	_, err := f.svc.ImportProducts(context.Background(), f.target.ID)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeUpstream, domainErr.Code)
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestValidate_ReportsAllThreeReasons(t *testing.T) {
	f := newProductFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	mappedCategory := uuid.New()
	unmappedCategory := uuid.New()
	expectedNode := uuid.New()
	wrongNode := uuid.New()

	missing := newMasterProduct(t, f.master.ID, "missing")
	unmapped := newMasterProduct(t, f.master.ID, "unmapped")
	require.NoError(t, unmapped.AssignDefaultCategory(unmappedCategory))
	mismatched := newMasterProduct(t, f.master.ID, "mismatched")
	require.NoError(t, mismatched.AssignDefaultCategory(mappedCategory))
	healthy := newMasterProduct(t, f.master.ID, "healthy")
	require.NoError(t, healthy.AssignDefaultCategory(mappedCategory))

	f.mappings.On("FindConfirmedByShop", mock.Anything, f.target.ID).Return([]category.Mapping{
		confirmedMapping(t, mappedCategory, f.target.ID, expectedNode),
	}, nil)

	mismatchedOverlay, err := product.NewShopOverlay(mismatched.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, mismatchedOverlay.AssignDefaultNode(wrongNode))
	healthyOverlay, err := product.NewShopOverlay(healthy.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, healthyOverlay.AssignDefaultNode(expectedNode))

	f.overlays.On("FindByShop", mock.Anything, f.target.ID).Return(map[uuid.UUID]*product.ShopOverlay{
		mismatched.ID: mismatchedOverlay,
		healthy.ID:    healthyOverlay,
	}, nil)

	f.products.On("FindByShop", mock.Anything, f.master.ID, "").Return([]product.Product{
		missing, unmapped, mismatched, healthy,
	}, nil)

	report, err := f.svc.Validate(context.Background(), uuid.Nil, f.target.ID, shared.Filter{}, true)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Stats.Products)
	assert.Equal(t, 3, report.Stats.Issues)
	assert.Equal(t, 1, report.Stats.ByReason[product.ReasonMissingMasterCategory])
	assert.Equal(t, 1, report.Stats.ByReason[product.ReasonUnmappedCategory])
	assert.Equal(t, 1, report.Stats.ByReason[product.ReasonMismatchedCategory])
	require.Len(t, report.Issues, 3)

	byProduct := make(map[uuid.UUID]product.Issue, len(report.Issues))
	for _, issue := range report.Issues {
		byProduct[issue.ProductID] = issue
	}
	assert.Equal(t, product.ReasonMissingMasterCategory, byProduct[missing.ID].Reason)
	assert.Equal(t, product.ReasonUnmappedCategory, byProduct[unmapped.ID].Reason)

	mi := byProduct[mismatched.ID]
	assert.Equal(t, product.ReasonMismatchedCategory, mi.Reason)
	require.NotNil(t, mi.ExpectedNodeID)
	assert.Equal(t, expectedNode, *mi.ExpectedNodeID)
	require.NotNil(t, mi.ActualNodeID)
	assert.Equal(t, wrongNode, *mi.ActualNodeID)
}

func TestValidate_MissingOverlayIsMismatch(t *testing.T) {
	f := newProductFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	mappedCategory := uuid.New()
	expectedNode := uuid.New()
	p := newMasterProduct(t, f.master.ID, "noverlay")
	require.NoError(t, p.AssignDefaultCategory(mappedCategory))

	f.mappings.On("FindConfirmedByShop", mock.Anything, f.target.ID).Return([]category.Mapping{
		confirmedMapping(t, mappedCategory, f.target.ID, expectedNode),
	}, nil)
	f.overlays.On("FindByShop", mock.Anything, f.target.ID).Return(map[uuid.UUID]*product.ShopOverlay{}, nil)
	f.products.On("FindByShop", mock.Anything, f.master.ID, "").Return([]product.Product{p}, nil)

	report, err := f.svc.Validate(context.Background(), uuid.Nil, f.target.ID, shared.Filter{}, true)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, product.ReasonMismatchedCategory, report.Issues[0].Reason)
	assert.Nil(t, report.Issues[0].ActualNodeID)
}

func TestValidate_PagesIssuesButSweepsStats(t *testing.T) {
	f := newProductFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	first := newMasterProduct(t, f.master.ID, "first")
	second := newMasterProduct(t, f.master.ID, "second")

	f.mappings.On("FindConfirmedByShop", mock.Anything, f.target.ID).Return([]category.Mapping{}, nil)
	f.overlays.On("FindByShop", mock.Anything, f.target.ID).Return(map[uuid.UUID]*product.ShopOverlay{}, nil)
	f.products.On("FindByShop", mock.Anything, f.master.ID, "").Return([]product.Product{first, second}, nil)
	f.products.On("FindByShopPaged", mock.Anything, f.master.ID, shared.Filter{Page: 2, PageSize: 1}).
		Return([]product.Product{second}, int64(2), nil)

	report, err := f.svc.Validate(context.Background(), uuid.Nil, f.target.ID, shared.Filter{Page: 2, PageSize: 1}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Stats.Issues)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, second.ID, report.Issues[0].ProductID)
	assert.Equal(t, int64(2), report.Total)
	assert.Equal(t, 2, report.Page)
}

func TestValidate_TargetMustDifferFromMaster(t *testing.T) {
	f := newProductFixture(t)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)

	_, err := f.svc.Validate(context.Background(), f.master.ID, f.master.ID, shared.Filter{}, false)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
}

func TestApplyToMaster_SavesAndPushes(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	node, err := category.NewNode("cat-guid-1", "Shirts", "shirts", nil, 0)
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.nodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)
	f.products.On("Save", mock.Anything, &p).Return(nil)
	f.catalog.On("SetProductDefaultCategory", mock.Anything, f.master, p.RemoteGUID, "cat-guid-1").Return(nil)

	require.NoError(t, f.svc.ApplyToMaster(context.Background(), p.ID, node.ID, true))
	require.NotNil(t, p.DefaultCategoryID)
	assert.Equal(t, node.ID, *p.DefaultCategoryID)
	f.catalog.AssertExpectations(t)
}

func TestApplyToMaster_PushFailureAbortsTransaction(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	node, err := category.NewNode("cat-guid-1", "Shirts", "shirts", nil, 0)
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.nodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)
	f.products.On("Save", mock.Anything, &p).Return(nil)
	f.catalog.On("SetProductDefaultCategory", mock.Anything, f.master, p.RemoteGUID, "cat-guid-1").
		Return(fmt.Errorf("status 502: %w", integration.ErrPlatformUnavailable))

	err = f.svc.ApplyToMaster(context.Background(), p.ID, node.ID, true)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeUpstream, domainErr.Code)
}

func TestApplyToMaster_SkipsPushWhenNotRequested(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	node, err := category.NewNode("cat-guid-1", "Shirts", "shirts", nil, 0)
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.nodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)
	f.products.On("Save", mock.Anything, &p).Return(nil)

	require.NoError(t, f.svc.ApplyToMaster(context.Background(), p.ID, node.ID, false))
	f.catalog.AssertNotCalled(t, "SetProductDefaultCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyToMaster_RejectsNonMasterProduct(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.target.ID, "shirt")

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	err := f.svc.ApplyToMaster(context.Background(), p.ID, uuid.New(), false)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestApplyToShop_CreatesOverlayAndPushes(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	node, err := category.NewShopNode(f.target.ID, "remote-cat-9", "Hemden")
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.shopNodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)
	f.overlays.On("FindByProductAndShop", mock.Anything, p.ID, f.target.ID).Return(nil, nil)
	f.overlays.On("Save", mock.Anything, mock.MatchedBy(func(o *product.ShopOverlay) bool {
		return o.ProductID == p.ID && o.ShopID == f.target.ID && o.DefaultNodeID != nil && *o.DefaultNodeID == node.ID
	})).Return(nil)
	// No overlay GUID recorded yet, so the master product GUID is sent
	f.catalog.On("SetProductDefaultCategory", mock.Anything, f.target, p.RemoteGUID, "remote-cat-9").Return(nil)

	require.NoError(t, f.svc.ApplyToShop(context.Background(), p.ID, f.target.ID, node.ID, true))
	f.overlays.AssertExpectations(t)
	f.catalog.AssertExpectations(t)
}

func TestApplyToShop_RejectsMasterShop(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)

	err := f.svc.ApplyToShop(context.Background(), p.ID, f.master.ID, uuid.New(), false)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestApplyToShop_RejectsForeignShopNode(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	otherShop := uuid.New()
	node, err := category.NewShopNode(otherShop, "remote-cat-9", "Hemden")
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.shopNodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)

	err = f.svc.ApplyToShop(context.Background(), p.ID, f.target.ID, node.ID, false)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestClearMaster_PushesEmptyGUID(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	require.NoError(t, p.AssignDefaultCategory(uuid.New()))

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)
	f.products.On("Save", mock.Anything, &p).Return(nil)
	f.catalog.On("SetProductDefaultCategory", mock.Anything, f.master, p.RemoteGUID, "").Return(nil)

	require.NoError(t, f.svc.ClearMaster(context.Background(), p.ID, true))
	assert.Nil(t, p.DefaultCategoryID)
	f.catalog.AssertExpectations(t)
}

func TestClearShop_NoOverlayIsNoOp(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.overlays.On("FindByProductAndShop", mock.Anything, p.ID, f.target.ID).Return(nil, nil)

	require.NoError(t, f.svc.ClearShop(context.Background(), p.ID, f.target.ID, true))
	f.overlays.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.catalog.AssertNotCalled(t, "SetProductDefaultCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDescribeSyncContext_FullTrail(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	node, err := category.NewNode("cat-guid-1", "Shirts", "shirts", nil, 0)
	require.NoError(t, err)
	require.NoError(t, p.AssignDefaultCategory(node.ID))
	shopNode, err := category.NewShopNode(f.target.ID, "remote-cat-9", "Hemden")
	require.NoError(t, err)
	mapping := confirmedMapping(t, node.ID, f.target.ID, shopNode.ID)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.nodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(&mapping, nil)
	f.shopNodes.On("FindByID", mock.Anything, shopNode.ID).Return(shopNode, nil)
	f.overlays.On("FindByProductAndShop", mock.Anything, p.ID, f.target.ID).Return(nil, nil)

	sc, err := f.svc.DescribeSyncContext(context.Background(), p.ID, f.target.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "remote-cat-9", sc.WouldSendGUID)
	assert.Equal(t, string(category.StatusConfirmed), sc.MappingStatus)
	require.NotNil(t, sc.ExpectedNodeID)
	assert.Equal(t, shopNode.ID, *sc.ExpectedNodeID)
	assert.NotEmpty(t, sc.Trail)
	assert.Contains(t, sc.Trail[len(sc.Trail)-1], "remote-cat-9")
}

func TestDescribeSyncContext_NoMasterCategoryStopsEarly(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	sc, err := f.svc.DescribeSyncContext(context.Background(), p.ID, f.target.ID, "")
	require.NoError(t, err)
	assert.Empty(t, sc.WouldSendGUID)
	assert.Nil(t, sc.MasterCategoryID)
	f.mappings.AssertNotCalled(t, "FindByNodeAndShop", mock.Anything, mock.Anything, mock.Anything)
}

func TestDescribeSyncContext_UnconfirmedMappingStops(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	node, err := category.NewNode("cat-guid-1", "Shirts", "shirts", nil, 0)
	require.NoError(t, err)
	require.NoError(t, p.AssignDefaultCategory(node.ID))

	rejected, err := category.NewMapping(node.ID, f.target.ID)
	require.NoError(t, err)
	rejected.Reject("no counterpart")

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.nodes.On("FindByID", mock.Anything, node.ID).Return(node, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(rejected, nil)

	sc, err := f.svc.DescribeSyncContext(context.Background(), p.ID, f.target.ID, "")
	require.NoError(t, err)
	assert.Equal(t, string(category.StatusRejected), sc.MappingStatus)
	assert.Empty(t, sc.WouldSendGUID)
	f.shopNodes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDescribeSyncContext_ExplicitCategoryOverridesStored(t *testing.T) {
	f := newProductFixture(t)
	p := newMasterProduct(t, f.master.ID, "shirt")
	require.NoError(t, p.AssignDefaultCategory(uuid.New()))
	override, err := category.NewNode("override-guid", "Override", "", nil, 0)
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.nodes.On("FindByGUID", mock.Anything, "override-guid").Return(override, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, override.ID, f.target.ID).Return(nil, nil)

	sc, err := f.svc.DescribeSyncContext(context.Background(), p.ID, f.target.ID, "override-guid")
	require.NoError(t, err)
	require.NotNil(t, sc.MasterCategoryID)
	assert.Equal(t, override.ID, *sc.MasterCategoryID)
	f.nodes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
