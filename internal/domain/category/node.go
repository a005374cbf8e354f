package category

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Node is one canonical (master tree) category. Roots have a nil ParentID.
type Node struct {
	shared.BaseEntity
	GUID     string
	Name     string
	Slug     string
	ParentID *uuid.UUID
	Position int
	// Description and SecondDescription are the master-side category texts;
	// they get pushed to paired shop categories on request.
	Description       string
	SecondDescription string
	// Mapping is the (master, target)-scoped mapping for the requested
	// target shop, attached by the repository when loading for a tree build.
	Mapping *Mapping
}

// NewNode creates a canonical category node. The parent, when set, must
// already exist; the repository enforces the reference.
func NewNode(guid, name, slug string, parentID *uuid.UUID, position int) (*Node, error) {
	if guid == "" {
		return nil, shared.NewValidationError("category guid cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("category name cannot be empty")
	}
	return &Node{
		BaseEntity: shared.NewBaseEntity(),
		GUID:       guid,
		Name:       name,
		Slug:       slug,
		ParentID:   parentID,
		Position:   position,
	}, nil
}

// SetDescriptions replaces both description texts.
func (n *Node) SetDescriptions(description, secondDescription string) {
	n.Description = description
	n.SecondDescription = secondDescription
	n.Touch()
}

// ShopNode is one category of a target shop's local tree, as imported from
// the remote platform.
type ShopNode struct {
	shared.BaseEntity
	ShopID     uuid.UUID
	RemoteGUID string
	RemoteID   *string
	Name       string
	Slug       string
	ParentID   *uuid.UUID
	Position   int
	// Path is the display breadcrumb, rebuilt on import.
	Path string
}

// NewShopNode creates a target-shop category node.
func NewShopNode(shopID uuid.UUID, remoteGUID, name string) (*ShopNode, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewValidationError("shop id is required")
	}
	if remoteGUID == "" {
		return nil, shared.NewValidationError("remote guid cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("category name cannot be empty")
	}
	return &ShopNode{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		RemoteGUID: remoteGUID,
		Name:       name,
	}, nil
}
