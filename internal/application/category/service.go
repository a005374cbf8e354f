package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"go.uber.org/zap"
)

// Service implements category tree reconciliation: tree assembly with
// mapping status attached, the confirm/reject workflow, description
// propagation to paired shop categories, and AI pre-mapping.
type Service struct {
	shops     shop.Repository
	nodes     category.NodeRepository
	shopNodes category.ShopNodeRepository
	mappings  category.MappingRepository
	oracle    integration.SuggestionOracle
	catalog   integration.RemoteCatalogClient
	tx        shared.TransactionManager
	logger    *zap.Logger
}

// NewService creates the category mapping service.
func NewService(
	shops shop.Repository,
	nodes category.NodeRepository,
	shopNodes category.ShopNodeRepository,
	mappings category.MappingRepository,
	oracle integration.SuggestionOracle,
	catalog integration.RemoteCatalogClient,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *Service {
	return &Service{
		shops:     shops,
		nodes:     nodes,
		shopNodes: shopNodes,
		mappings:  mappings,
		oracle:    oracle,
		catalog:   catalog,
		tx:        tx,
		logger:    logger.Named("category"),
	}
}

func (s *Service) resolveMaster(ctx context.Context, masterShopID uuid.UUID) (*shop.Shop, error) {
	if masterShopID != uuid.Nil {
		return s.shops.FindByID(ctx, masterShopID)
	}
	return s.shops.FindMaster(ctx)
}

// BuildTrees assembles the canonical tree with mapping status for the target
// shop plus the shop's own tree. An empty target shop yields an empty shop
// tree; the canonical tree is built regardless.
func (s *Service) BuildTrees(ctx context.Context, masterShopID, targetShopID uuid.UUID) (*TreesResult, error) {
	master, err := s.resolveMaster(ctx, masterShopID)
	if err != nil {
		return nil, err
	}
	target, err := s.shops.FindByID(ctx, targetShopID)
	if err != nil {
		return nil, err
	}
	if target.ID == master.ID {
		return nil, shared.NewValidationError("target shop must differ from the master shop")
	}

	canonicalNodes, err := s.nodes.FindAllWithMapping(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	shopNodes, err := s.shopNodes.FindByShop(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	canonical, summary := category.BuildTree(canonicalNodes)
	shopTree, shopOrphans := category.BuildShopTree(shopNodes)
	summary.ShopNodes = len(shopNodes)
	summary.ShopOrphans = shopOrphans

	// Store-level counts, so mappings whose canonical node no longer loads
	// still show up in the health summary.
	counts, err := s.mappings.CountByStatus(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	summary.MappingsByStatus = counts
	if summary.Orphans > 0 || shopOrphans > 0 {
		s.logger.Warn("orphaned category nodes promoted to roots",
			zap.Int("canonical_orphans", summary.Orphans),
			zap.Int("shop_orphans", shopOrphans),
			zap.String("target_shop_id", target.ID.String()),
		)
	}

	return &TreesResult{
		MasterShopID: master.ID,
		TargetShopID: target.ID,
		Canonical:    canonical,
		Shop:         shopTree,
		Summary:      summary,
	}, nil
}

// Confirm upserts the mapping for (canonical node, shop of the target node)
// as operator-verified. Idempotent.
func (s *Service) Confirm(ctx context.Context, categoryNodeID, shopNodeID uuid.UUID, notes string) (*category.Mapping, error) {
	if _, err := s.nodes.FindByID(ctx, categoryNodeID); err != nil {
		return nil, err
	}
	shopNode, err := s.shopNodes.FindByID(ctx, shopNodeID)
	if err != nil {
		return nil, err
	}

	var mapping *category.Mapping
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		mapping, err = s.mappings.FindByNodeAndShop(ctx, categoryNodeID, shopNode.ShopID)
		if err != nil {
			return err
		}
		if mapping == nil {
			mapping, err = category.NewMapping(categoryNodeID, shopNode.ShopID)
			if err != nil {
				return err
			}
		}
		if err := mapping.Confirm(shopNode.ID, notes); err != nil {
			return err
		}
		return s.mappings.Save(ctx, mapping)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category mapping confirmed",
		zap.String("category_node_id", categoryNodeID.String()),
		zap.String("shop_node_id", shopNode.ID.String()),
		zap.String("shop_id", shopNode.ShopID.String()),
	)
	return mapping, nil
}

// Reject marks the canonical node as having no counterpart in the shop and
// clears any previous pairing. Idempotent.
func (s *Service) Reject(ctx context.Context, categoryNodeID, shopID uuid.UUID, notes string) (*category.Mapping, error) {
	if _, err := s.nodes.FindByID(ctx, categoryNodeID); err != nil {
		return nil, err
	}
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, err
	}

	var mapping *category.Mapping
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		mapping, err = s.mappings.FindByNodeAndShop(ctx, categoryNodeID, shopID)
		if err != nil {
			return err
		}
		if mapping == nil {
			mapping, err = category.NewMapping(categoryNodeID, shopID)
			if err != nil {
				return err
			}
		}
		mapping.Reject(notes)
		return s.mappings.Save(ctx, mapping)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category mapping rejected",
		zap.String("category_node_id", categoryNodeID.String()),
		zap.String("shop_id", shopID.String()),
	)
	return mapping, nil
}

// UpdateDescription stores a canonical category's description texts and, when
// a target shop is given, pushes them to the shop category confirmed for that
// node. The push runs inside the transaction so a remote failure leaves the
// stored texts unchanged.
func (s *Service) UpdateDescription(ctx context.Context, categoryNodeID, targetShopID uuid.UUID, description, secondDescription string) (*category.Node, error) {
	node, err := s.nodes.FindByID(ctx, categoryNodeID)
	if err != nil {
		return nil, err
	}

	var target *shop.Shop
	var shopNode *category.ShopNode
	if targetShopID != uuid.Nil {
		target, err = s.shops.FindByID(ctx, targetShopID)
		if err != nil {
			return nil, err
		}
		mapping, err := s.mappings.FindByNodeAndShop(ctx, node.ID, target.ID)
		if err != nil {
			return nil, err
		}
		if mapping == nil || !mapping.IsConfirmed() || mapping.ShopNodeID == nil {
			return nil, shared.NewConflictError("category %s has no confirmed counterpart in shop %s", node.ID, target.Code)
		}
		shopNode, err = s.shopNodes.FindByID(ctx, *mapping.ShopNodeID)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		node.SetDescriptions(description, secondDescription)
		if err := s.nodes.Save(ctx, node); err != nil {
			return err
		}
		if shopNode != nil {
			update := integration.CategoryUpdate{
				Description:       &node.Description,
				SecondDescription: &node.SecondDescription,
			}
			if err := s.catalog.UpdateCategory(ctx, target, shopNode.RemoteGUID, update); err != nil {
				return translatePushError(err, target)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category description updated",
		zap.String("category_node_id", node.ID.String()),
		zap.Bool("pushed", shopNode != nil),
	)
	return node, nil
}

// PreMapWithAI forwards canonical nodes (unmapped only, unless includeMapped)
// and the shop's local nodes to the suggestion backend and returns its
// proposals. Persists nothing.
func (s *Service) PreMapWithAI(ctx context.Context, masterShopID, targetShopID uuid.UUID, includeMapped bool, instructions string) ([]PreMapProposal, error) {
	master, err := s.resolveMaster(ctx, masterShopID)
	if err != nil {
		return nil, err
	}
	target, err := s.shops.FindByID(ctx, targetShopID)
	if err != nil {
		return nil, err
	}
	if target.ID == master.ID {
		return nil, shared.NewValidationError("target shop must differ from the master shop")
	}

	canonicalNodes, err := s.nodes.FindAllWithMapping(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	shopNodes, err := s.shopNodes.FindByShop(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	nodeByID := make(map[uuid.UUID]*category.Node, len(canonicalNodes))
	for i := range canonicalNodes {
		nodeByID[canonicalNodes[i].ID] = &canonicalNodes[i]
	}
	shopNodeByID := make(map[uuid.UUID]*category.ShopNode, len(shopNodes))
	for i := range shopNodes {
		shopNodeByID[shopNodes[i].ID] = &shopNodes[i]
	}

	req := integration.CategorySuggestionRequest{
		MasterShopID:  master.ID,
		TargetShopID:  target.ID,
		IncludeMapped: includeMapped,
		Instructions:  instructions,
	}
	for i := range canonicalNodes {
		n := &canonicalNodes[i]
		mapped := n.Mapping != nil && n.Mapping.IsConfirmed()
		if mapped && !includeMapped {
			continue
		}
		path, _ := category.PathOf(n, nodeByID)
		req.Canonical = append(req.Canonical, integration.CategoryDescriptor{
			ID:     n.ID,
			Name:   n.Name,
			Path:   path,
			Mapped: mapped,
		})
	}
	for i := range shopNodes {
		n := &shopNodes[i]
		path, _ := category.ShopPathOf(n, shopNodeByID)
		req.ShopNodes = append(req.ShopNodes, integration.CategoryDescriptor{
			ID:   n.ID,
			Name: n.Name,
			Path: path,
		})
	}

	suggestions, err := s.oracle.SuggestCategoryMappings(ctx, req)
	if err != nil {
		return nil, translateOracleError(err)
	}

	proposals := make([]PreMapProposal, 0, len(suggestions))
	for _, sg := range suggestions {
		node, ok := nodeByID[sg.CanonicalNodeID]
		if !ok {
			// The oracle referenced a node we never sent; drop it
			continue
		}
		proposal := PreMapProposal{
			CanonicalNodeID: node.ID,
			CanonicalName:   node.Name,
			Similarity:      clamp01(sg.Similarity),
			Reason:          sg.Reason,
		}
		proposal.CanonicalPath, _ = category.PathOf(node, nodeByID)
		if sg.SuggestedNodeID != nil {
			if sn, ok := shopNodeByID[*sg.SuggestedNodeID]; ok {
				proposal.SuggestedNodeID = &sn.ID
				proposal.SuggestedName = sn.Name
				proposal.SuggestedPath, _ = category.ShopPathOf(sn, shopNodeByID)
			}
		}
		proposals = append(proposals, proposal)
	}
	return proposals, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func translatePushError(err error, sh *shop.Shop) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, integration.ErrPlatformNotConfigured) {
		return shared.NewConfigurationError("shop %s: %v", sh.Code, err)
	}
	return shared.NewUpstreamError("shop %s: %v", sh.Code, err)
}

func translateOracleError(err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, integration.ErrOracleNotConfigured) {
		return shared.NewConfigurationError("suggestion backend: %v", err)
	}
	return shared.NewUpstreamError("suggestion backend: %v", err)
}
