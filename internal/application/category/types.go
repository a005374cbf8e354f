package category

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
)

// TreesResult is the assembled view of both trees plus health counts.
type TreesResult struct {
	MasterShopID uuid.UUID
	TargetShopID uuid.UUID
	Canonical    []*category.TreeNode
	Shop         []*category.ShopTreeNode
	Summary      category.TreeSummary
}

// PreMapProposal is one AI-proposed category pairing. Nothing is persisted;
// confirmation is a separate explicit call.
type PreMapProposal struct {
	CanonicalNodeID uuid.UUID  `json:"canonical_node_id"`
	CanonicalName   string     `json:"canonical_name"`
	CanonicalPath   string     `json:"canonical_path,omitempty"`
	SuggestedNodeID *uuid.UUID `json:"suggested_node_id,omitempty"`
	SuggestedName   string     `json:"suggested_name,omitempty"`
	SuggestedPath   string     `json:"suggested_path,omitempty"`
	Similarity      float64    `json:"similarity"`
	Reason          string     `json:"reason,omitempty"`
}
