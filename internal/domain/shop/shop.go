package shop

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Shop represents one connected store. Exactly one shop should be flagged as
// master; its catalog is the classification ground truth for all others.
type Shop struct {
	shared.BaseEntity
	Code     string
	Name     string
	URL      string
	IsMaster bool
	// APITokenRef names the credential entry used by the remote catalog
	// client for this shop. The token itself never enters the domain layer.
	APITokenRef string
}

// New creates a new shop.
func New(code, name string, isMaster bool) (*Shop, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("shop code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("shop name cannot be empty")
	}
	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToLower(code),
		Name:       name,
		IsMaster:   isMaster,
	}, nil
}

// Rename updates the display name.
func (s *Shop) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("shop name cannot be empty")
	}
	s.Name = name
	s.Touch()
	return nil
}

// PromoteToMaster flags this shop as the master. The repository is
// responsible for demoting any previous master in the same transaction.
func (s *Shop) PromoteToMaster() {
	s.IsMaster = true
	s.Touch()
}

// IsTargetOf reports whether this shop is a target relative to the given
// master shop id.
func (s *Shop) IsTargetOf(masterID uuid.UUID) bool {
	return !s.IsMaster && s.ID != masterID
}
