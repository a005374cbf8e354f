package product

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/product"
)

// ImportResult reports one catalog import run.
type ImportResult struct {
	ShopID  uuid.UUID `json:"shop_id"`
	Fetched int       `json:"fetched"`
	Created int       `json:"created"`
	Updated int       `json:"updated"`
}

// ValidationReport is one page of validator issues plus whole-set stats.
// Stats always cover the full filtered product set so the health indicator
// does not depend on which page is being viewed.
type ValidationReport struct {
	Issues   []product.Issue         `json:"issues"`
	Stats    product.ValidationStats `json:"stats"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Total    int64                   `json:"total"`
}

// SyncContext is the recomputed decision trail for one product and shop,
// returned by the debug endpoint. Produced without side effects.
type SyncContext struct {
	ProductID        uuid.UUID  `json:"product_id"`
	ProductGUID      string     `json:"product_guid"`
	ShopID           uuid.UUID  `json:"shop_id"`
	MasterCategoryID *uuid.UUID `json:"master_category_id,omitempty"`
	MasterCategory   string     `json:"master_category,omitempty"`
	MappingStatus    string     `json:"mapping_status,omitempty"`
	ExpectedNodeID   *uuid.UUID `json:"expected_node_id,omitempty"`
	ExpectedCategory string     `json:"expected_category,omitempty"`
	ActualNodeID     *uuid.UUID `json:"actual_node_id,omitempty"`
	WouldSendGUID    string     `json:"would_send_guid,omitempty"`
	Trail            []string   `json:"trail"`
}
