package product

import "github.com/google/uuid"

// IssueReason classifies a default-category inconsistency.
type IssueReason string

const (
	ReasonMissingMasterCategory IssueReason = "missing_master_category"
	ReasonUnmappedCategory      IssueReason = "unmapped_category"
	ReasonMismatchedCategory    IssueReason = "mismatched_category"
)

// Issue describes one product whose default-category state disagrees with
// the confirmed mapping for a target shop.
type Issue struct {
	ProductID        uuid.UUID   `json:"product_id"`
	ProductName      string      `json:"product_name"`
	ProductCode      string      `json:"product_code,omitempty"`
	Reason           IssueReason `json:"reason"`
	MasterCategoryID *uuid.UUID  `json:"master_category_id,omitempty"`
	ExpectedNodeID   *uuid.UUID  `json:"expected_node_id,omitempty"`
	ActualNodeID     *uuid.UUID  `json:"actual_node_id,omitempty"`
}

// ValidationStats aggregates issue counts by reason across the whole filtered
// product set, independent of the page being viewed.
type ValidationStats struct {
	Products int                 `json:"products"`
	Issues   int                 `json:"issues"`
	ByReason map[IssueReason]int `json:"by_reason"`
}
