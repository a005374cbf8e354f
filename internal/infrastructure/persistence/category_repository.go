package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryNodeRepository implements category.NodeRepository using GORM
type GormCategoryNodeRepository struct {
	db *gorm.DB
}

// NewGormCategoryNodeRepository creates a new GormCategoryNodeRepository
func NewGormCategoryNodeRepository(db *gorm.DB) *GormCategoryNodeRepository {
	return &GormCategoryNodeRepository{db: db}
}

// FindByID finds a canonical node by its ID
func (r *GormCategoryNodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Node, error) {
	var model models.CategoryNodeModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("category node %s not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGUID finds a canonical node by its guid
func (r *GormCategoryNodeRepository) FindByGUID(ctx context.Context, guid string) (*category.Node, error) {
	var model models.CategoryNodeModel
	if err := session(ctx, r.db).First(&model, "guid = ?", guid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("category with guid %q not found", guid)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every canonical node
func (r *GormCategoryNodeRepository) FindAll(ctx context.Context) ([]category.Node, error) {
	var rows []models.CategoryNodeModel
	if err := session(ctx, r.db).Order("position ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	nodes := make([]category.Node, 0, len(rows))
	for i := range rows {
		nodes = append(nodes, *rows[i].ToDomain())
	}
	return nodes, nil
}

// FindAllWithMapping returns every canonical node with the mapping for the
// given target shop attached. Two queries, joined in memory; no per-node
// lookups.
func (r *GormCategoryNodeRepository) FindAllWithMapping(ctx context.Context, shopID uuid.UUID) ([]category.Node, error) {
	nodes, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var mappingRows []models.CategoryMappingModel
	if err := session(ctx, r.db).
		Where("shop_id = ?", shopID).
		Find(&mappingRows).Error; err != nil {
		return nil, err
	}
	byNode := make(map[uuid.UUID]*category.Mapping, len(mappingRows))
	for i := range mappingRows {
		byNode[mappingRows[i].CategoryNodeID] = mappingRows[i].ToDomain()
	}

	for i := range nodes {
		nodes[i].Mapping = byNode[nodes[i].ID]
	}
	return nodes, nil
}

// Save creates or updates a canonical node
func (r *GormCategoryNodeRepository) Save(ctx context.Context, n *category.Node) error {
	var model models.CategoryNodeModel
	model.FromDomain(n)
	return session(ctx, r.db).Save(&model).Error
}

// Ensure GormCategoryNodeRepository implements category.NodeRepository
var _ category.NodeRepository = (*GormCategoryNodeRepository)(nil)

// GormShopNodeRepository implements category.ShopNodeRepository using GORM
type GormShopNodeRepository struct {
	db *gorm.DB
}

// NewGormShopNodeRepository creates a new GormShopNodeRepository
func NewGormShopNodeRepository(db *gorm.DB) *GormShopNodeRepository {
	return &GormShopNodeRepository{db: db}
}

// FindByID finds a shop node by its ID
func (r *GormShopNodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.ShopNode, error) {
	var model models.ShopCategoryNodeModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("shop category node %s not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShop returns all local nodes of one shop
func (r *GormShopNodeRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]category.ShopNode, error) {
	var rows []models.ShopCategoryNodeModel
	if err := session(ctx, r.db).
		Where("shop_id = ?", shopID).
		Order("position ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	nodes := make([]category.ShopNode, 0, len(rows))
	for i := range rows {
		nodes = append(nodes, *rows[i].ToDomain())
	}
	return nodes, nil
}

// Save creates or updates a shop node
func (r *GormShopNodeRepository) Save(ctx context.Context, n *category.ShopNode) error {
	var model models.ShopCategoryNodeModel
	model.FromDomain(n)
	return session(ctx, r.db).Save(&model).Error
}

// Ensure GormShopNodeRepository implements category.ShopNodeRepository
var _ category.ShopNodeRepository = (*GormShopNodeRepository)(nil)
