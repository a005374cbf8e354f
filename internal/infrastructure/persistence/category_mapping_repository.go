package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/category"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryMappingRepository implements category.MappingRepository using GORM
type GormCategoryMappingRepository struct {
	db *gorm.DB
}

// NewGormCategoryMappingRepository creates a new GormCategoryMappingRepository
func NewGormCategoryMappingRepository(db *gorm.DB) *GormCategoryMappingRepository {
	return &GormCategoryMappingRepository{db: db}
}

// FindByNodeAndShop returns the mapping for (node, shop), or nil when none exists
func (r *GormCategoryMappingRepository) FindByNodeAndShop(ctx context.Context, categoryNodeID, shopID uuid.UUID) (*category.Mapping, error) {
	var model models.CategoryMappingModel
	if err := session(ctx, r.db).
		Where("category_node_id = ? AND shop_id = ?", categoryNodeID, shopID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindConfirmedByShop returns every confirmed mapping for a shop
func (r *GormCategoryMappingRepository) FindConfirmedByShop(ctx context.Context, shopID uuid.UUID) ([]category.Mapping, error) {
	var rows []models.CategoryMappingModel
	if err := session(ctx, r.db).
		Where("shop_id = ? AND status = ?", shopID, string(category.StatusConfirmed)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	mappings := make([]category.Mapping, 0, len(rows))
	for i := range rows {
		mappings = append(mappings, *rows[i].ToDomain())
	}
	return mappings, nil
}

// Save upserts on (category_node_id, shop_id)
func (r *GormCategoryMappingRepository) Save(ctx context.Context, m *category.Mapping) error {
	var model models.CategoryMappingModel
	model.FromDomain(m)
	return session(ctx, r.db).Save(&model).Error
}

// CountByStatus returns mapping counts for a shop grouped by status
func (r *GormCategoryMappingRepository) CountByStatus(ctx context.Context, shopID uuid.UUID) (map[category.MappingStatus]int, error) {
	type statusCount struct {
		Status string
		Count  int
	}
	var rows []statusCount
	if err := session(ctx, r.db).
		Model(&models.CategoryMappingModel{}).
		Select("status, count(*) as count").
		Where("shop_id = ?", shopID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[category.MappingStatus]int, len(rows))
	for _, row := range rows {
		counts[category.MappingStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// Ensure GormCategoryMappingRepository implements category.MappingRepository
var _ category.MappingRepository = (*GormCategoryMappingRepository)(nil)
