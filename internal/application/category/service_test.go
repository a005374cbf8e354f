package category

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type categoryFixture struct {
	shops     *mockShopRepository
	nodes     *mockNodeRepository
	shopNodes *mockShopNodeRepository
	mappings  *mockMappingRepository
	oracle    *mockOracle
	catalog   *mockCatalogClient
	svc       *Service
	master    *shop.Shop
	target    *shop.Shop
}

func newCategoryFixture(t *testing.T) *categoryFixture {
	t.Helper()
	master, err := shop.New("master", "Master Shop", true)
	require.NoError(t, err)
	target, err := shop.New("target", "Target Shop", false)
	require.NoError(t, err)

	f := &categoryFixture{
		shops:     &mockShopRepository{},
		nodes:     &mockNodeRepository{},
		shopNodes: &mockShopNodeRepository{},
		mappings:  &mockMappingRepository{},
		oracle:    &mockOracle{},
		catalog:   &mockCatalogClient{},
		master:    master,
		target:    target,
	}
	f.svc = NewService(f.shops, f.nodes, f.shopNodes, f.mappings, f.oracle, f.catalog, passthroughTx{}, zap.NewNop())
	return f
}

func newCanonicalNode(t *testing.T, name string, parentID *uuid.UUID) category.Node {
	t.Helper()
	n, err := category.NewNode(uuid.NewString(), name, "", parentID, 0)
	require.NoError(t, err)
	return *n
}

func newShopLocalNode(t *testing.T, shopID uuid.UUID, name string) category.ShopNode {
	t.Helper()
	n, err := category.NewShopNode(shopID, uuid.NewString(), name)
	require.NoError(t, err)
	return *n
}

func TestBuildTrees_AssemblesBothSides(t *testing.T) {
	f := newCategoryFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	root := newCanonicalNode(t, "Root", nil)
	child := newCanonicalNode(t, "Child", &root.ID)
	missing := uuid.New()
	orphan := newCanonicalNode(t, "Orphan", &missing)

	shopRoot := newShopLocalNode(t, f.target.ID, "Shop Root")

	f.nodes.On("FindAllWithMapping", mock.Anything, f.target.ID).Return([]category.Node{root, child, orphan}, nil)
	f.shopNodes.On("FindByShop", mock.Anything, f.target.ID).Return([]category.ShopNode{shopRoot}, nil)
	f.mappings.On("CountByStatus", mock.Anything, f.target.ID).Return(map[category.MappingStatus]int{}, nil)

	result, err := f.svc.BuildTrees(context.Background(), uuid.Nil, f.target.ID)
	require.NoError(t, err)

	assert.Equal(t, f.master.ID, result.MasterShopID)
	assert.Len(t, result.Canonical, 2)
	assert.Len(t, result.Shop, 1)
	assert.Equal(t, 3, result.Summary.CanonicalNodes)
	assert.Equal(t, 1, result.Summary.Orphans)
	assert.Equal(t, 1, result.Summary.ShopNodes)
	assert.Equal(t, 0, result.Summary.ShopOrphans)
}

func TestBuildTrees_SummaryUsesStoredMappingCounts(t *testing.T) {
	f := newCategoryFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	// One loaded node carries no mapping; the store still knows about three.
	root := newCanonicalNode(t, "Root", nil)
	f.nodes.On("FindAllWithMapping", mock.Anything, f.target.ID).Return([]category.Node{root}, nil)
	f.shopNodes.On("FindByShop", mock.Anything, f.target.ID).Return([]category.ShopNode{}, nil)
	f.mappings.On("CountByStatus", mock.Anything, f.target.ID).Return(map[category.MappingStatus]int{
		category.StatusConfirmed: 2,
		category.StatusRejected:  1,
	}, nil)

	result, err := f.svc.BuildTrees(context.Background(), uuid.Nil, f.target.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.MappingsByStatus[category.StatusConfirmed])
	assert.Equal(t, 1, result.Summary.MappingsByStatus[category.StatusRejected])
	f.mappings.AssertExpectations(t)
}

func TestBuildTrees_TargetMustDifferFromMaster(t *testing.T) {
	f := newCategoryFixture(t)
	f.shops.On("FindByID", mock.Anything, f.master.ID).Return(f.master, nil)

	_, err := f.svc.BuildTrees(context.Background(), f.master.ID, f.master.ID)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
}

func TestConfirm_CreatesMappingWhenAbsent(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)
	shopNode := newShopLocalNode(t, f.target.ID, "Schuhe")

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.shopNodes.On("FindByID", mock.Anything, shopNode.ID).Return(&shopNode, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(nil, nil)
	f.mappings.On("Save", mock.Anything, mock.MatchedBy(func(m *category.Mapping) bool {
		return m.IsConfirmed() && *m.ShopNodeID == shopNode.ID && m.ShopID == f.target.ID
	})).Return(nil)

	mapping, err := f.svc.Confirm(context.Background(), node.ID, shopNode.ID, "verified")
	require.NoError(t, err)
	assert.True(t, mapping.IsConfirmed())
	require.NotNil(t, mapping.Confidence)
	assert.Equal(t, 1.0, *mapping.Confidence)
	f.mappings.AssertExpectations(t)
}

func TestConfirm_IsIdempotentOnExistingMapping(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)
	shopNode := newShopLocalNode(t, f.target.ID, "Schuhe")

	existing, err := category.NewMapping(node.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, existing.Confirm(shopNode.ID, "first pass"))

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.shopNodes.On("FindByID", mock.Anything, shopNode.ID).Return(&shopNode, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(existing, nil)
	f.mappings.On("Save", mock.Anything, existing).Return(nil)

	mapping, err := f.svc.Confirm(context.Background(), node.ID, shopNode.ID, "")
	require.NoError(t, err)
	assert.True(t, mapping.IsConfirmed())
	assert.Equal(t, "first pass", mapping.Notes)
}

func TestReject_ClearsPreviousPairing(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)

	existing, err := category.NewMapping(node.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, existing.Confirm(uuid.New(), ""))

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(existing, nil)
	f.mappings.On("Save", mock.Anything, existing).Return(nil)

	mapping, err := f.svc.Reject(context.Background(), node.ID, f.target.ID, "no counterpart")
	require.NoError(t, err)
	assert.Equal(t, category.StatusRejected, mapping.Status)
	assert.Nil(t, mapping.ShopNodeID)
}

func TestReject_UnknownNodeFails(t *testing.T) {
	f := newCategoryFixture(t)
	nodeID := uuid.New()
	f.nodes.On("FindByID", mock.Anything, nodeID).Return(nil, shared.NewNotFoundError("category node not found"))

	_, err := f.svc.Reject(context.Background(), nodeID, f.target.ID, "")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	f.mappings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPreMapWithAI_SkipsConfirmedUnlessIncluded(t *testing.T) {
	f := newCategoryFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	mapped := newCanonicalNode(t, "Mapped", nil)
	unmapped := newCanonicalNode(t, "Unmapped", nil)
	shopNode := newShopLocalNode(t, f.target.ID, "Kandidat")

	mapping, err := category.NewMapping(mapped.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, mapping.Confirm(shopNode.ID, ""))
	mapped.Mapping = mapping

	f.nodes.On("FindAllWithMapping", mock.Anything, f.target.ID).Return([]category.Node{mapped, unmapped}, nil)
	f.shopNodes.On("FindByShop", mock.Anything, f.target.ID).Return([]category.ShopNode{shopNode}, nil)

	f.oracle.On("SuggestCategoryMappings", mock.Anything, mock.MatchedBy(func(req integration.CategorySuggestionRequest) bool {
		return len(req.Canonical) == 1 && req.Canonical[0].ID == unmapped.ID && len(req.ShopNodes) == 1
	})).Return([]integration.CategorySuggestion{
		{CanonicalNodeID: unmapped.ID, SuggestedNodeID: &shopNode.ID, Similarity: 1.7},
	}, nil)

	proposals, err := f.svc.PreMapWithAI(context.Background(), uuid.Nil, f.target.ID, false, "")
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, unmapped.ID, proposals[0].CanonicalNodeID)
	require.NotNil(t, proposals[0].SuggestedNodeID)
	assert.Equal(t, shopNode.ID, *proposals[0].SuggestedNodeID)
	assert.Equal(t, 1.0, proposals[0].Similarity)
	f.oracle.AssertExpectations(t)
}

func TestPreMapWithAI_DropsUnknownOracleReferences(t *testing.T) {
	f := newCategoryFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)

	node := newCanonicalNode(t, "Known", nil)
	f.nodes.On("FindAllWithMapping", mock.Anything, f.target.ID).Return([]category.Node{node}, nil)
	f.shopNodes.On("FindByShop", mock.Anything, f.target.ID).Return([]category.ShopNode{}, nil)

	phantom := uuid.New()
	f.oracle.On("SuggestCategoryMappings", mock.Anything, mock.Anything).Return([]integration.CategorySuggestion{
		{CanonicalNodeID: phantom, Similarity: 0.9},
		{CanonicalNodeID: node.ID, Similarity: 0.4},
	}, nil)

	proposals, err := f.svc.PreMapWithAI(context.Background(), uuid.Nil, f.target.ID, false, "")
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, node.ID, proposals[0].CanonicalNodeID)
	assert.Nil(t, proposals[0].SuggestedNodeID)
}

func TestPreMapWithAI_TranslatesOracleErrors(t *testing.T) {
	f := newCategoryFixture(t)
	f.shops.On("FindMaster", mock.Anything).Return(f.master, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.nodes.On("FindAllWithMapping", mock.Anything, f.target.ID).Return([]category.Node{}, nil)
	f.shopNodes.On("FindByShop", mock.Anything, f.target.ID).Return([]category.ShopNode{}, nil)

	f.oracle.On("SuggestCategoryMappings", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("no key: %w", integration.ErrOracleNotConfigured))

	_, err := f.svc.PreMapWithAI(context.Background(), uuid.Nil, f.target.ID, false, "")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeConfiguration, domainErr.Code)
}

func TestUpdateDescription_SavesWithoutPush(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.nodes.On("Save", mock.Anything, &node).Return(nil)

	updated, err := f.svc.UpdateDescription(context.Background(), node.ID, uuid.Nil, "All kinds of shoes.", "")
	require.NoError(t, err)
	assert.Equal(t, "All kinds of shoes.", updated.Description)
	f.catalog.AssertNotCalled(t, "UpdateCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateDescription_PushesToConfirmedCounterpart(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)
	shopNode := newShopLocalNode(t, f.target.ID, "Schuhe")

	mapping, err := category.NewMapping(node.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, mapping.Confirm(shopNode.ID, ""))

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(mapping, nil)
	f.shopNodes.On("FindByID", mock.Anything, shopNode.ID).Return(&shopNode, nil)
	f.nodes.On("Save", mock.Anything, &node).Return(nil)
	f.catalog.On("UpdateCategory", mock.Anything, f.target, shopNode.RemoteGUID,
		mock.MatchedBy(func(u integration.CategoryUpdate) bool {
			return u.Description != nil && *u.Description == "All kinds of shoes." &&
				u.SecondDescription != nil && *u.SecondDescription == "Footer text"
		})).Return(nil)

	_, err = f.svc.UpdateDescription(context.Background(), node.ID, f.target.ID, "All kinds of shoes.", "Footer text")
	require.NoError(t, err)
	f.catalog.AssertExpectations(t)
}

func TestUpdateDescription_RequiresConfirmedMapping(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(nil, nil)

	_, err := f.svc.UpdateDescription(context.Background(), node.ID, f.target.ID, "text", "")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
	f.nodes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.catalog.AssertNotCalled(t, "UpdateCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateDescription_TranslatesPushFailure(t *testing.T) {
	f := newCategoryFixture(t)
	node := newCanonicalNode(t, "Shoes", nil)
	shopNode := newShopLocalNode(t, f.target.ID, "Schuhe")

	mapping, err := category.NewMapping(node.ID, f.target.ID)
	require.NoError(t, err)
	require.NoError(t, mapping.Confirm(shopNode.ID, ""))

	f.nodes.On("FindByID", mock.Anything, node.ID).Return(&node, nil)
	f.shops.On("FindByID", mock.Anything, f.target.ID).Return(f.target, nil)
	f.mappings.On("FindByNodeAndShop", mock.Anything, node.ID, f.target.ID).Return(mapping, nil)
	f.shopNodes.On("FindByID", mock.Anything, shopNode.ID).Return(&shopNode, nil)
	f.nodes.On("Save", mock.Anything, &node).Return(nil)
	f.catalog.On("UpdateCategory", mock.Anything, f.target, shopNode.RemoteGUID, mock.Anything).
		Return(fmt.Errorf("status 502: %w", integration.ErrPlatformUnavailable))

	_, err = f.svc.UpdateDescription(context.Background(), node.ID, f.target.ID, "text", "")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeUpstream, domainErr.Code)
}
