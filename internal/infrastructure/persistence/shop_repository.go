package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShopRepository implements shop.Repository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	var model models.ShopModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("shop %s not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a shop by its code
func (r *GormShopRepository) FindByCode(ctx context.Context, code string) (*shop.Shop, error) {
	var model models.ShopModel
	if err := session(ctx, r.db).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("shop %q not found", code)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindMaster finds the master shop; the oldest wins if several are flagged
func (r *GormShopRepository) FindMaster(ctx context.Context) (*shop.Shop, error) {
	var model models.ShopModel
	if err := session(ctx, r.db).
		Where("is_master = ?", true).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("no shop is flagged as master")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all shops ordered by name
func (r *GormShopRepository) FindAll(ctx context.Context) ([]shop.Shop, error) {
	var rows []models.ShopModel
	if err := session(ctx, r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	shops := make([]shop.Shop, 0, len(rows))
	for i := range rows {
		shops = append(shops, *rows[i].ToDomain())
	}
	return shops, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	var model models.ShopModel
	model.FromDomain(s)
	return session(ctx, r.db).Save(&model).Error
}

// Ensure GormShopRepository implements shop.Repository
var _ shop.Repository = (*GormShopRepository)(nil)
