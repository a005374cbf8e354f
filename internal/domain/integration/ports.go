// Package integration defines the ports to external collaborators: the
// remote commerce platform and the AI suggestion backend. Adapters live in
// infrastructure; nothing here knows wire formats.
package integration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// Sentinel errors adapters wrap so callers can translate failures into the
// right error kind without knowing the transport.
var (
	ErrPlatformUnavailable   = errors.New("remote platform unavailable")
	ErrPlatformNotConfigured = errors.New("remote platform credentials not configured")
	ErrOracleUnavailable     = errors.New("suggestion backend unavailable")
	ErrOracleNotConfigured   = errors.New("suggestion backend credentials not configured")
)

// CategoryUpdate carries the fields the platform accepts on a category.
type CategoryUpdate struct {
	Description       *string
	SecondDescription *string
}

// ProductDetail is a normalized remote product snapshot.
type ProductDetail struct {
	RemoteGUID          string
	Code                string
	Name                string
	Price               decimal.Decimal
	Currency            string
	DefaultCategoryGUID string
}

// RemoteCatalogClient lists and updates a shop's catalog on the remote
// platform. Listings are returned already normalized; the adapter is the
// only component that knows the platform's payload shapes.
type RemoteCatalogClient interface {
	ListFlags(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error)
	ListFilteringParameters(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error)
	ListVariantParameters(ctx context.Context, s *shop.Shop) ([]taxonomy.MappableItem, error)
	// ListProducts returns the shop's product snapshots, used to seed and
	// refresh the local product mirror.
	ListProducts(ctx context.Context, s *shop.Shop) ([]ProductDetail, error)
	UpdateCategory(ctx context.Context, s *shop.Shop, remoteCategoryID string, update CategoryUpdate) error
	// SetProductDefaultCategory points a remote product at a remote
	// category. Used when a default-category change is pushed upstream.
	SetProductDefaultCategory(ctx context.Context, s *shop.Shop, productGUID, categoryGUID string) error
}

// ListItems dispatches to the listing matching the attribute type.
func ListItems(ctx context.Context, c RemoteCatalogClient, s *shop.Shop, typ taxonomy.AttributeType) ([]taxonomy.MappableItem, error) {
	switch typ {
	case taxonomy.TypeFlags:
		return c.ListFlags(ctx, s)
	case taxonomy.TypeFilteringParameters:
		return c.ListFilteringParameters(ctx, s)
	case taxonomy.TypeVariants:
		return c.ListVariantParameters(ctx, s)
	default:
		return nil, errors.New("unsupported attribute type " + typ.String())
	}
}

// ListingCache fronts remote listings with a TTL cache so repeated view
// loads do not hammer the platform API. Misses return ok=false.
type ListingCache interface {
	Get(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType) ([]taxonomy.MappableItem, bool)
	Set(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType, items []taxonomy.MappableItem)
	Invalidate(ctx context.Context, shopID uuid.UUID, typ taxonomy.AttributeType)
}

// CategoryDescriptor is the plain shape of a category forwarded to the
// suggestion backend.
type CategoryDescriptor struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Path   string    `json:"path,omitempty"`
	Mapped bool      `json:"mapped,omitempty"`
}

// CategorySuggestionRequest packages everything the oracle needs to propose
// category pairings.
type CategorySuggestionRequest struct {
	MasterShopID  uuid.UUID
	TargetShopID  uuid.UUID
	IncludeMapped bool
	Instructions  string
	Canonical     []CategoryDescriptor
	ShopNodes     []CategoryDescriptor
}

// CategorySuggestion is one proposed pairing. Never persisted by the oracle
// path; confirmation is a separate explicit call.
type CategorySuggestion struct {
	CanonicalNodeID uuid.UUID  `json:"canonical_node_id"`
	SuggestedNodeID *uuid.UUID `json:"suggested_node_id,omitempty"`
	Similarity      float64    `json:"similarity"`
	Reason          string     `json:"reason,omitempty"`
}

// AttributePairing is one proposed attribute mapping.
type AttributePairing struct {
	MasterKey  string         `json:"master_key"`
	TargetKey  string         `json:"target_key"`
	Confidence float64        `json:"confidence"`
	Rationale  string         `json:"rationale,omitempty"`
	Values     []ValuePairing `json:"values,omitempty"`
}

// ValuePairing is one proposed value mapping under an attribute pairing.
type ValuePairing struct {
	MasterValueKey string  `json:"master_value_key"`
	TargetValueKey string  `json:"target_value_key"`
	Confidence     float64 `json:"confidence"`
}

// SuggestionOracle proposes mappings between two item or category sets.
type SuggestionOracle interface {
	SuggestCategoryMappings(ctx context.Context, req CategorySuggestionRequest) ([]CategorySuggestion, error)
	SuggestAttributeMappings(ctx context.Context, master, target []taxonomy.MappableItem) ([]AttributePairing, error)
}
