package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/product"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"go.uber.org/zap"
)

// Service implements default-category validation and updates. Updates that
// push to the remote platform run inside the same transaction as the local
// mutation; a remote failure rolls the local change back.
type Service struct {
	shops     shop.Repository
	products  product.Repository
	overlays  product.OverlayRepository
	nodes     category.NodeRepository
	shopNodes category.ShopNodeRepository
	mappings  category.MappingRepository
	catalog   integration.RemoteCatalogClient
	tx        shared.TransactionManager
	logger    *zap.Logger
}

// NewService creates the default-category service.
func NewService(
	shops shop.Repository,
	products product.Repository,
	overlays product.OverlayRepository,
	nodes category.NodeRepository,
	shopNodes category.ShopNodeRepository,
	mappings category.MappingRepository,
	catalog integration.RemoteCatalogClient,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *Service {
	return &Service{
		shops:     shops,
		products:  products,
		overlays:  overlays,
		nodes:     nodes,
		shopNodes: shopNodes,
		mappings:  mappings,
		catalog:   catalog,
		tx:        tx,
		logger:    logger.Named("default_category"),
	}
}

func (s *Service) resolveMaster(ctx context.Context, masterShopID uuid.UUID) (*shop.Shop, error) {
	if masterShopID != uuid.Nil {
		return s.shops.FindByID(ctx, masterShopID)
	}
	return s.shops.FindMaster(ctx)
}

// ImportProducts mirrors a shop's remote catalog locally. Known products get
// their code, name and price snapshot refreshed; unknown ones are created.
// For the master shop a remote default category fills the product's canonical
// assignment when none is set locally and a node with that guid exists.
func (s *Service) ImportProducts(ctx context.Context, shopID uuid.UUID) (*ImportResult, error) {
	sh, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	details, err := s.catalog.ListProducts(ctx, sh)
	if err != nil {
		return nil, translateListError(err, sh)
	}
	existing, err := s.products.FindByShop(ctx, sh.ID, "")
	if err != nil {
		return nil, err
	}
	byGUID := make(map[string]*product.Product, len(existing))
	for i := range existing {
		byGUID[existing[i].RemoteGUID] = &existing[i]
	}

	result := &ImportResult{ShopID: sh.ID, Fetched: len(details)}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, d := range details {
			p, known := byGUID[d.RemoteGUID]
			if known {
				p.Code = d.Code
				p.Name = d.Name
				p.SetPrice(d.Price, d.Currency)
				result.Updated++
			} else {
				p, err = product.New(sh.ID, d.RemoteGUID, d.Code, d.Name)
				if err != nil {
					return err
				}
				p.SetPrice(d.Price, d.Currency)
				result.Created++
			}
			// Local assignments stay authoritative; the remote value only
			// seeds products that have none yet.
			if sh.IsMaster && d.DefaultCategoryGUID != "" && p.DefaultCategoryID == nil {
				node, err := s.nodes.FindByGUID(ctx, d.DefaultCategoryGUID)
				switch {
				case err == nil:
					if err := p.AssignDefaultCategory(node.ID); err != nil {
						return err
					}
				case !isNotFound(err):
					return err
				}
			}
			if err := s.products.Save(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product catalog imported",
		zap.String("shop_id", sh.ID.String()),
		zap.Int("fetched", result.Fetched),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

// Validate sweeps master products and reports default-category assignments
// inconsistent with the confirmed mapping for the target shop. Issues are
// paged; stats cover the whole filtered set. With all=true every issue is
// returned regardless of pagination.
func (s *Service) Validate(ctx context.Context, masterShopID, targetShopID uuid.UUID, filter shared.Filter, all bool) (*ValidationReport, error) {
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

	confirmed, err := s.mappings.FindConfirmedByShop(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	expectedByCategory := make(map[uuid.UUID]uuid.UUID, len(confirmed))
	for i := range confirmed {
		if confirmed[i].ShopNodeID != nil {
			expectedByCategory[confirmed[i].CategoryNodeID] = *confirmed[i].ShopNodeID
		}
	}

	overlays, err := s.overlays.FindByShop(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	// Full sweep for the stats, independent of the requested page
	allProducts, err := s.products.FindByShop(ctx, master.ID, filter.Search)
	if err != nil {
		return nil, err
	}

	stats := product.ValidationStats{
		Products: len(allProducts),
		ByReason: make(map[product.IssueReason]int),
	}
	issueByProduct := make(map[uuid.UUID]product.Issue)
	for i := range allProducts {
		issue := evaluateProduct(&allProducts[i], expectedByCategory, overlays)
		if issue == nil {
			continue
		}
		issueByProduct[allProducts[i].ID] = *issue
		stats.Issues++
		stats.ByReason[issue.Reason]++
	}

	report := &ValidationReport{Stats: stats, Issues: []product.Issue{}}
	if all {
		for i := range allProducts {
			if issue, ok := issueByProduct[allProducts[i].ID]; ok {
				report.Issues = append(report.Issues, issue)
			}
		}
		report.Page = 1
		report.PageSize = len(report.Issues)
		report.Total = int64(len(allProducts))
		return report, nil
	}

	filter.Normalize()
	pageProducts, total, err := s.products.FindByShopPaged(ctx, master.ID, filter)
	if err != nil {
		return nil, err
	}
	for i := range pageProducts {
		if issue, ok := issueByProduct[pageProducts[i].ID]; ok {
			report.Issues = append(report.Issues, issue)
		}
	}
	report.Page = filter.Page
	report.PageSize = filter.PageSize
	report.Total = total
	return report, nil
}

func evaluateProduct(p *product.Product, expectedByCategory map[uuid.UUID]uuid.UUID, overlays map[uuid.UUID]*product.ShopOverlay) *product.Issue {
	issue := &product.Issue{
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductCode: p.Code,
	}

	if p.DefaultCategoryID == nil {
		issue.Reason = product.ReasonMissingMasterCategory
		return issue
	}
	issue.MasterCategoryID = p.DefaultCategoryID

	expected, ok := expectedByCategory[*p.DefaultCategoryID]
	if !ok {
		issue.Reason = product.ReasonUnmappedCategory
		return issue
	}
	issue.ExpectedNodeID = &expected

	var actual *uuid.UUID
	if overlay, ok := overlays[p.ID]; ok {
		actual = overlay.DefaultNodeID
	}
	if actual == nil || *actual != expected {
		issue.Reason = product.ReasonMismatchedCategory
		issue.ActualNodeID = actual
		return issue
	}
	return nil
}

// ApplyToMaster files the product under a canonical category and optionally
// pushes the assignment to the remote platform.
func (s *Service) ApplyToMaster(ctx context.Context, productID, categoryNodeID uuid.UUID, syncToShoptet bool) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	owner, err := s.shops.FindByID(ctx, p.ShopID)
	if err != nil {
		return err
	}
	if !owner.IsMaster {
		return shared.NewConflictError("product %s does not belong to the master shop", p.ID)
	}
	node, err := s.nodes.FindByID(ctx, categoryNodeID)
	if err != nil {
		return err
	}
	if node.GUID == "" {
		return shared.NewConflictError("category %s has no guid and cannot be pushed", node.ID)
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := p.AssignDefaultCategory(node.ID); err != nil {
			return err
		}
		if err := s.products.Save(ctx, p); err != nil {
			return err
		}
		if syncToShoptet {
			if err := s.catalog.SetProductDefaultCategory(ctx, owner, p.RemoteGUID, node.GUID); err != nil {
				// Abort the transaction; local state must not drift ahead
				// of the platform
				return translatePushError(err, owner, p)
			}
		}
		s.logger.Info("master default category applied",
			zap.String("product_id", p.ID.String()),
			zap.String("category_node_id", node.ID.String()),
			zap.Bool("synced", syncToShoptet),
		)
		return nil
	})
}

// ApplyToShop files the product under a shop-local category in the target
// shop's overlay and optionally pushes the assignment.
func (s *Service) ApplyToShop(ctx context.Context, productID, shopID, shopNodeID uuid.UUID, syncToShoptet bool) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	target, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return err
	}
	if target.IsMaster {
		return shared.NewConflictError("shop %s is the master shop; use the master assignment instead", target.Code)
	}
	node, err := s.shopNodes.FindByID(ctx, shopNodeID)
	if err != nil {
		return err
	}
	if node.ShopID != target.ID {
		return shared.NewConflictError("category node %s belongs to a different shop", node.ID)
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		overlay, err := s.overlays.FindByProductAndShop(ctx, p.ID, target.ID)
		if err != nil {
			return err
		}
		if overlay == nil {
			overlay, err = product.NewShopOverlay(p.ID, target.ID)
			if err != nil {
				return err
			}
		}
		if err := overlay.AssignDefaultNode(node.ID); err != nil {
			return err
		}
		if err := s.overlays.Save(ctx, overlay); err != nil {
			return err
		}
		if syncToShoptet {
			remoteGUID := overlay.RemoteGUID
			if remoteGUID == "" {
				remoteGUID = p.RemoteGUID
			}
			if err := s.catalog.SetProductDefaultCategory(ctx, target, remoteGUID, node.RemoteGUID); err != nil {
				return translatePushError(err, target, p)
			}
		}
		s.logger.Info("shop default category applied",
			zap.String("product_id", p.ID.String()),
			zap.String("shop_id", target.ID.String()),
			zap.String("shop_node_id", node.ID.String()),
			zap.Bool("synced", syncToShoptet),
		)
		return nil
	})
}

// ClearMaster removes the product's master default category.
func (s *Service) ClearMaster(ctx context.Context, productID uuid.UUID, syncToShoptet bool) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	owner, err := s.shops.FindByID(ctx, p.ShopID)
	if err != nil {
		return err
	}
	if !owner.IsMaster {
		return shared.NewConflictError("product %s does not belong to the master shop", p.ID)
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p.ClearDefaultCategory()
		if err := s.products.Save(ctx, p); err != nil {
			return err
		}
		if syncToShoptet {
			if err := s.catalog.SetProductDefaultCategory(ctx, owner, p.RemoteGUID, ""); err != nil {
				return translatePushError(err, owner, p)
			}
		}
		return nil
	})
}

// ClearShop removes the product's default category in one target shop.
func (s *Service) ClearShop(ctx context.Context, productID, shopID uuid.UUID, syncToShoptet bool) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	target, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		overlay, err := s.overlays.FindByProductAndShop(ctx, p.ID, target.ID)
		if err != nil {
			return err
		}
		if overlay == nil {
			// Nothing recorded locally; clearing is a no-op
			return nil
		}
		overlay.ClearDefaultNode()
		if err := s.overlays.Save(ctx, overlay); err != nil {
			return err
		}
		if syncToShoptet {
			remoteGUID := overlay.RemoteGUID
			if remoteGUID == "" {
				remoteGUID = p.RemoteGUID
			}
			if err := s.catalog.SetProductDefaultCategory(ctx, target, remoteGUID, ""); err != nil {
				return translatePushError(err, target, p)
			}
		}
		return nil
	})
}

// DescribeSyncContext recomputes the full decision trail for one product and
// target shop. Strictly read-only; nothing is written or pushed.
func (s *Service) DescribeSyncContext(ctx context.Context, productID, shopID uuid.UUID, categoryGUID string) (*SyncContext, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	target, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	sc := &SyncContext{
		ProductID:   p.ID,
		ProductGUID: p.RemoteGUID,
		ShopID:      target.ID,
	}
	sc.Trail = append(sc.Trail, fmt.Sprintf("loaded product %s (%s)", p.ID, p.Name))

	if categoryGUID != "" {
		// Operator supplied an explicit category to trace instead of the
		// product's stored assignment
		node, err := s.nodes.FindByGUID(ctx, categoryGUID)
		if err != nil {
			return nil, err
		}
		sc.MasterCategoryID = &node.ID
		sc.MasterCategory = node.Name
		sc.Trail = append(sc.Trail, fmt.Sprintf("using explicit category %s (%s)", node.GUID, node.Name))
	} else if p.DefaultCategoryID != nil {
		node, err := s.nodes.FindByID(ctx, *p.DefaultCategoryID)
		if err != nil {
			return nil, err
		}
		sc.MasterCategoryID = &node.ID
		sc.MasterCategory = node.Name
		sc.Trail = append(sc.Trail, fmt.Sprintf("product default category is %s (%s)", node.GUID, node.Name))
	} else {
		sc.Trail = append(sc.Trail, "product has no master default category; nothing would be sent")
		return sc, nil
	}

	mapping, err := s.mappings.FindByNodeAndShop(ctx, *sc.MasterCategoryID, target.ID)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		sc.Trail = append(sc.Trail, "no mapping exists for this category and shop; nothing would be sent")
		return sc, nil
	}
	sc.MappingStatus = string(mapping.Status)
	if !mapping.IsConfirmed() {
		sc.Trail = append(sc.Trail, fmt.Sprintf("mapping exists but status is %s; nothing would be sent", mapping.Status))
		return sc, nil
	}

	shopNode, err := s.shopNodes.FindByID(ctx, *mapping.ShopNodeID)
	if err != nil {
		return nil, err
	}
	sc.ExpectedNodeID = &shopNode.ID
	sc.ExpectedCategory = shopNode.Name
	sc.WouldSendGUID = shopNode.RemoteGUID
	sc.Trail = append(sc.Trail, fmt.Sprintf("confirmed mapping points to shop category %s (%s)", shopNode.RemoteGUID, shopNode.Name))

	overlay, err := s.overlays.FindByProductAndShop(ctx, p.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if overlay != nil && overlay.DefaultNodeID != nil {
		sc.ActualNodeID = overlay.DefaultNodeID
		if *overlay.DefaultNodeID == shopNode.ID {
			sc.Trail = append(sc.Trail, "overlay already records the expected category; push would be a no-op")
		} else {
			sc.Trail = append(sc.Trail, "overlay records a different category; push would correct it")
		}
	} else {
		sc.Trail = append(sc.Trail, "overlay records no category; push would set it")
	}
	sc.Trail = append(sc.Trail, fmt.Sprintf("would send defaultCategoryGuid=%s for product %s", shopNode.RemoteGUID, p.RemoteGUID))

	return sc, nil
}

func isNotFound(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Code == shared.CodeNotFound
}

func translateListError(err error, sh *shop.Shop) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, integration.ErrPlatformNotConfigured) {
		return shared.NewConfigurationError("shop %s: %v", sh.Code, err)
	}
	return shared.NewUpstreamError("shop %s: %v", sh.Code, err)
}

func translatePushError(err error, sh *shop.Shop, p *product.Product) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, integration.ErrPlatformNotConfigured) {
		return shared.NewConfigurationError("shop %s: %v", sh.Code, err)
	}
	return shared.NewUpstreamError("shop %s, product %s: %v", sh.Code, p.RemoteGUID, err)
}
