package taxonomy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Service implements the attribute-mapping operations: view, save, suggest
// and cache sync. All mutations in one call commit or roll back together.
type Service struct {
	shops    shop.Repository
	settings shop.SettingsRepository
	mappings taxonomy.AttributeMappingRepository
	catalog  integration.RemoteCatalogClient
	oracle   integration.SuggestionOracle
	listings integration.ListingCache
	tx       shared.TransactionManager
	langTag  language.Tag
	logger   *zap.Logger
}

// NewService creates the attribute-mapping service. languageTag is the BCP 47
// tag used for label collation; an unparseable tag falls back to und.
func NewService(
	shops shop.Repository,
	settings shop.SettingsRepository,
	mappings taxonomy.AttributeMappingRepository,
	catalog integration.RemoteCatalogClient,
	oracle integration.SuggestionOracle,
	listings integration.ListingCache,
	tx shared.TransactionManager,
	languageTag string,
	logger *zap.Logger,
) *Service {
	tag, err := language.Parse(languageTag)
	if err != nil {
		tag = language.Und
	}
	return &Service{
		shops:    shops,
		settings: settings,
		mappings: mappings,
		catalog:  catalog,
		oracle:   oracle,
		listings: listings,
		tx:       tx,
		langTag:  tag,
		logger:   logger.Named("taxonomy"),
	}
}

// collator builds a fresh collator per call; collators are not safe for
// concurrent use.
func (s *Service) collator() *collate.Collator {
	return collate.New(s.langTag, collate.IgnoreCase)
}

// resolveScope loads master and target shops. masterShopID may be Nil, in
// which case the shop flagged is_master is used.
func (s *Service) resolveScope(ctx context.Context, masterShopID, targetShopID uuid.UUID) (*shop.Shop, *shop.Shop, error) {
	var master *shop.Shop
	var err error
	if masterShopID != uuid.Nil {
		master, err = s.shops.FindByID(ctx, masterShopID)
	} else {
		master, err = s.shops.FindMaster(ctx)
	}
	if err != nil {
		return nil, nil, err
	}

	target, err := s.shops.FindByID(ctx, targetShopID)
	if err != nil {
		return nil, nil, err
	}
	if target.ID == master.ID {
		return nil, nil, shared.NewValidationError("target shop must differ from the master shop")
	}
	return master, target, nil
}

// fetchListing returns the live remote listing, going through the listing
// cache unless bypass is set.
func (s *Service) fetchListing(ctx context.Context, sh *shop.Shop, typ taxonomy.AttributeType, bypass bool) ([]taxonomy.MappableItem, error) {
	if !bypass {
		if items, ok := s.listings.Get(ctx, sh.ID, typ); ok {
			return items, nil
		}
	}
	items, err := integration.ListItems(ctx, s.catalog, sh, typ)
	if err != nil {
		return nil, translatePortError(err, sh, typ)
	}
	s.listings.Set(ctx, sh.ID, typ, items)
	return items, nil
}

// loadMergedItems fetches the live listing and merges it on top of the
// shop's persisted attribute cache. The result is label-sorted.
func (s *Service) loadMergedItems(ctx context.Context, sh *shop.Shop, typ taxonomy.AttributeType, bypassListingCache bool) ([]taxonomy.MappableItem, error) {
	fetched, err := s.fetchListing(ctx, sh, typ, bypassListingCache)
	if err != nil {
		return nil, err
	}

	raw, err := s.settings.GetDocument(ctx, sh.ID, taxonomy.SettingsKeyAttributeCache)
	if err != nil {
		return nil, err
	}
	doc, err := taxonomy.DecodeCacheDocument(raw)
	if err != nil {
		// A broken cache document must not block the view; the fetch is
		// authoritative for everything it returns.
		s.logger.Warn("dropping corrupted attribute cache",
			zap.String("shop_id", sh.ID.String()),
			zap.String("type", typ.String()),
			zap.Error(err),
		)
		doc = taxonomy.CacheDocument{}
	}

	merged := taxonomy.MergeItems(doc.ItemsFor(typ), fetched)
	taxonomy.SortItemsByLabel(merged, s.collator())
	return merged, nil
}

// GetView returns the current mapping view for one scope.
func (s *Service) GetView(ctx context.Context, masterShopID, targetShopID uuid.UUID, typ taxonomy.AttributeType) (*MappingView, error) {
	master, target, err := s.resolveScope(ctx, masterShopID, targetShopID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, master, target, typ)
}

func (s *Service) buildView(ctx context.Context, master, target *shop.Shop, typ taxonomy.AttributeType) (*MappingView, error) {
	masterItems, err := s.loadMergedItems(ctx, master, typ, false)
	if err != nil {
		return nil, err
	}
	targetItems, err := s.loadMergedItems(ctx, target, typ, false)
	if err != nil {
		return nil, err
	}
	targetItems = taxonomy.AnnotateTarget(masterItems, targetItems)

	scope := taxonomy.MappingScope{MasterShopID: master.ID, TargetShopID: target.ID, Type: typ}
	records, err := s.mappings.FindByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &MappingView{
		MasterShopID: master.ID,
		TargetShopID: target.ID,
		Type:         typ,
		MasterItems:  masterItems,
		TargetItems:  targetItems,
		Mappings:     records,
	}, nil
}

// Save persists a full mapping submission for one scope and returns the
// refreshed view. Submitting a set fully replaces the set: mappings whose
// master key is absent from the submission are deleted.
func (s *Service) Save(ctx context.Context, masterShopID, targetShopID uuid.UUID, typ taxonomy.AttributeType, submitted []SubmittedMapping) (*MappingView, error) {
	// Reject malformed submissions before touching anything
	if !typ.HasValues() {
		for _, sub := range submitted {
			if len(sub.Values) > 0 {
				return nil, shared.NewValidationError("attribute type %s does not carry value mappings (master key %q)", typ, sub.MasterKey)
			}
		}
	}
	for _, sub := range submitted {
		if sub.MasterKey == "" {
			return nil, shared.NewValidationError("submission contains an entry without a master key")
		}
	}

	master, target, err := s.resolveScope(ctx, masterShopID, targetShopID)
	if err != nil {
		return nil, err
	}

	masterItems, err := s.loadMergedItems(ctx, master, typ, false)
	if err != nil {
		return nil, err
	}
	targetItems, err := s.loadMergedItems(ctx, target, typ, false)
	if err != nil {
		return nil, err
	}
	masterIdx := taxonomy.ItemIndex(masterItems)
	targetIdx := taxonomy.ItemIndex(targetItems)

	scope := taxonomy.MappingScope{MasterShopID: master.ID, TargetShopID: target.ID, Type: typ}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		submittedKeys := make([]string, 0, len(submitted))
		for _, sub := range submitted {
			submittedKeys = append(submittedKeys, sub.MasterKey)
		}

		for _, sub := range submitted {
			masterItem, ok := masterIdx[sub.MasterKey]
			if !ok {
				// Stale submission; the master attribute is gone
				s.logger.Debug("skipping unknown master key",
					zap.String("master_key", sub.MasterKey),
					zap.String("type", typ.String()),
				)
				continue
			}

			if sub.TargetKey == "" {
				existing, err := s.mappings.FindByMasterKey(ctx, scope, sub.MasterKey)
				if err != nil {
					return err
				}
				if existing != nil {
					if err := s.mappings.Delete(ctx, existing.ID); err != nil {
						return err
					}
				}
				continue
			}

			targetItem, ok := targetIdx[sub.TargetKey]
			if !ok {
				s.logger.Debug("skipping unknown target key",
					zap.String("master_key", sub.MasterKey),
					zap.String("target_key", sub.TargetKey),
					zap.String("type", typ.String()),
				)
				continue
			}

			// Last submission for a target key wins; the previous owner's
			// mapping is dropped
			claimant, err := s.mappings.FindByTargetKey(ctx, scope, sub.TargetKey)
			if err != nil {
				return err
			}
			if claimant != nil && claimant.MasterKey != sub.MasterKey {
				s.logger.Info("releasing target key claim",
					zap.String("target_key", sub.TargetKey),
					zap.String("previous_master_key", claimant.MasterKey),
					zap.String("new_master_key", sub.MasterKey),
					zap.String("type", typ.String()),
				)
				if err := s.mappings.Delete(ctx, claimant.ID); err != nil {
					return err
				}
			}

			mapping, err := s.mappings.FindByMasterKey(ctx, scope, sub.MasterKey)
			if err != nil {
				return err
			}
			if mapping == nil {
				mapping, err = taxonomy.NewAttributeMapping(master.ID, target.ID, typ, sub.MasterKey, masterItem.Label)
				if err != nil {
					return err
				}
			}
			mapping.RefreshMasterLabel(masterItem.Label)
			if err := mapping.SetTarget(targetItem.Key, targetItem.Label); err != nil {
				return err
			}

			if typ.HasValues() && sub.Values != nil {
				values, err := buildValueMappings(sub.Values, masterItem, targetItem)
				if err != nil {
					return err
				}
				if err := mapping.ReplaceValues(values); err != nil {
					return err
				}
			}

			if err := s.mappings.Save(ctx, mapping); err != nil {
				return err
			}
		}

		// Full-replace sweep: anything not in this submission goes away
		removed, err := s.mappings.DeleteOutsideMasterKeys(ctx, scope, submittedKeys)
		if err != nil {
			return err
		}
		if removed > 0 {
			s.logger.Info("removed mappings absent from submission",
				zap.Int64("count", removed),
				zap.String("type", typ.String()),
				zap.String("target_shop_id", target.ID.String()),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, master, target, typ)
}

// buildValueMappings keeps only entries whose master value exists and whose
// target value exists. Duplicate target value keys are resolved first-wins
// by ReplaceValues.
func buildValueMappings(submitted []SubmittedValue, masterItem, targetItem *taxonomy.MappableItem) ([]taxonomy.AttributeValueMapping, error) {
	values := make([]taxonomy.AttributeValueMapping, 0, len(submitted))
	for _, sv := range submitted {
		masterValue := masterItem.FindValue(sv.MasterValueKey)
		if masterValue == nil {
			continue
		}
		var targetKey, targetLabel *string
		if sv.TargetValueKey != "" {
			targetValue := targetItem.FindValue(sv.TargetValueKey)
			if targetValue == nil {
				continue
			}
			targetKey = &targetValue.Key
			targetLabel = &targetValue.Label
		}
		vm, err := taxonomy.NewAttributeValueMapping(masterValue.Key, masterValue.Label, targetKey, targetLabel)
		if err != nil {
			return nil, err
		}
		values = append(values, vm)
	}
	return values, nil
}

// Suggest forwards both merged item sets to the suggestion backend and
// returns its pairings without persisting anything.
func (s *Service) Suggest(ctx context.Context, masterShopID, targetShopID uuid.UUID, typ taxonomy.AttributeType) ([]integration.AttributePairing, error) {
	master, target, err := s.resolveScope(ctx, masterShopID, targetShopID)
	if err != nil {
		return nil, err
	}
	masterItems, err := s.loadMergedItems(ctx, master, typ, false)
	if err != nil {
		return nil, err
	}
	targetItems, err := s.loadMergedItems(ctx, target, typ, false)
	if err != nil {
		return nil, err
	}

	pairings, err := s.oracle.SuggestAttributeMappings(ctx, masterItems, targetItems)
	if err != nil {
		return nil, translateOracleError(err)
	}
	return pairings, nil
}

// Sync refreshes the shop's persisted attribute cache for the given types.
// The remote fetch bypasses the listing cache; fetch wins on conflicts.
func (s *Service) Sync(ctx context.Context, shopID uuid.UUID, types []taxonomy.AttributeType) (*SyncResult, error) {
	sh, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = taxonomy.AllAttributeTypes()
	}

	raw, err := s.settings.GetDocument(ctx, sh.ID, taxonomy.SettingsKeyAttributeCache)
	if err != nil {
		return nil, err
	}
	doc, err := taxonomy.DecodeCacheDocument(raw)
	if err != nil {
		s.logger.Warn("rebuilding corrupted attribute cache", zap.String("shop_id", sh.ID.String()), zap.Error(err))
		doc = taxonomy.CacheDocument{}
	}

	result := &SyncResult{ShopID: sh.ID, Counts: make(map[taxonomy.AttributeType]int, len(types))}
	for _, typ := range types {
		fetched, err := s.fetchListing(ctx, sh, typ, true)
		if err != nil {
			return nil, err
		}
		merged := taxonomy.MergeItems(doc.ItemsFor(typ), fetched)
		doc[typ] = merged
		result.Counts[typ] = len(merged)
		s.listings.Invalidate(ctx, sh.ID, typ)
	}

	encoded, err := doc.Encode()
	if err != nil {
		return nil, err
	}
	if err := s.settings.PutDocument(ctx, sh.ID, taxonomy.SettingsKeyAttributeCache, encoded); err != nil {
		return nil, err
	}

	s.logger.Info("attribute cache synced",
		zap.String("shop_id", sh.ID.String()),
		zap.Int("types", len(types)),
	)
	return result, nil
}

// translatePortError maps remote catalog failures onto domain error kinds,
// keeping enough context for the operator to reproduce the call.
func translatePortError(err error, sh *shop.Shop, typ taxonomy.AttributeType) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, integration.ErrPlatformNotConfigured) {
		return shared.NewConfigurationError("shop %s (%s): %v", sh.Code, typ, err)
	}
	return shared.NewUpstreamError("shop %s (%s): %v", sh.Code, typ, err)
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
