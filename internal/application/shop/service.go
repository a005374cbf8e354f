package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shop"
)

// Service exposes the shop registry. Shops are registered through
// configuration and migrations; the API only reads them.
type Service struct {
	shops shop.Repository
}

// NewService creates the shop registry service.
func NewService(shops shop.Repository) *Service {
	return &Service{shops: shops}
}

// List returns all registered shops.
func (s *Service) List(ctx context.Context) ([]shop.Shop, error) {
	return s.shops.FindAll(ctx)
}

// Get returns one shop by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	return s.shops.FindByID(ctx, id)
}

// GetMaster returns the shop flagged as master.
func (s *Service) GetMaster(ctx context.Context) (*shop.Shop, error) {
	return s.shops.FindMaster(ctx)
}
