package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/product"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements product.Repository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var model models.ProductModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product %s not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func applyProductSearch(q *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return q
	}
	pattern := "%" + search + "%"
	return q.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
}

// FindByShopPaged returns one page of a shop's products plus the total count
func (r *GormProductRepository) FindByShopPaged(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]product.Product, int64, error) {
	filter.Normalize()
	base := applyProductSearch(
		session(ctx, r.db).Model(&models.ProductModel{}).Where("shop_id = ?", shopID),
		filter.Search,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := base.
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]product.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].ToDomain())
	}
	return products, total, nil
}

// FindByShop returns the whole filtered product set of a shop
func (r *GormProductRepository) FindByShop(ctx context.Context, shopID uuid.UUID, search string) ([]product.Product, error) {
	var rows []models.ProductModel
	q := applyProductSearch(
		session(ctx, r.db).Where("shop_id = ?", shopID),
		search,
	)
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]product.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].ToDomain())
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *product.Product) error {
	var model models.ProductModel
	model.FromDomain(p)
	return session(ctx, r.db).Save(&model).Error
}

// Ensure GormProductRepository implements product.Repository
var _ product.Repository = (*GormProductRepository)(nil)

// GormOverlayRepository implements product.OverlayRepository using GORM
type GormOverlayRepository struct {
	db *gorm.DB
}

// NewGormOverlayRepository creates a new GormOverlayRepository
func NewGormOverlayRepository(db *gorm.DB) *GormOverlayRepository {
	return &GormOverlayRepository{db: db}
}

// FindByProductAndShop returns the overlay for (product, shop), or nil
func (r *GormOverlayRepository) FindByProductAndShop(ctx context.Context, productID, shopID uuid.UUID) (*product.ShopOverlay, error) {
	var model models.ProductOverlayModel
	if err := session(ctx, r.db).
		Where("product_id = ? AND shop_id = ?", productID, shopID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShop returns all overlays of a shop keyed by product id
func (r *GormOverlayRepository) FindByShop(ctx context.Context, shopID uuid.UUID) (map[uuid.UUID]*product.ShopOverlay, error) {
	var rows []models.ProductOverlayModel
	if err := session(ctx, r.db).Where("shop_id = ?", shopID).Find(&rows).Error; err != nil {
		return nil, err
	}
	overlays := make(map[uuid.UUID]*product.ShopOverlay, len(rows))
	for i := range rows {
		overlays[rows[i].ProductID] = rows[i].ToDomain()
	}
	return overlays, nil
}

// Save creates or updates an overlay
func (r *GormOverlayRepository) Save(ctx context.Context, o *product.ShopOverlay) error {
	var model models.ProductOverlayModel
	model.FromDomain(o)
	return session(ctx, r.db).Save(&model).Error
}

// Ensure GormOverlayRepository implements product.OverlayRepository
var _ product.OverlayRepository = (*GormOverlayRepository)(nil)
