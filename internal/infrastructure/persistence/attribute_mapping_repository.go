package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/taxonomy"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttributeMappingRepository implements taxonomy.AttributeMappingRepository
// using GORM. Mappings are loaded and stored with their value rows.
type GormAttributeMappingRepository struct {
	db *gorm.DB
}

// NewGormAttributeMappingRepository creates a new GormAttributeMappingRepository
func NewGormAttributeMappingRepository(db *gorm.DB) *GormAttributeMappingRepository {
	return &GormAttributeMappingRepository{db: db}
}

func scopeQuery(q *gorm.DB, scope taxonomy.MappingScope) *gorm.DB {
	return q.Where("master_shop_id = ? AND target_shop_id = ? AND type = ?",
		scope.MasterShopID, scope.TargetShopID, string(scope.Type))
}

// FindByScope returns every mapping in the scope with values preloaded
func (r *GormAttributeMappingRepository) FindByScope(ctx context.Context, scope taxonomy.MappingScope) ([]taxonomy.AttributeMapping, error) {
	var rows []models.AttributeMappingModel
	if err := scopeQuery(session(ctx, r.db).Preload("Values"), scope).
		Order("master_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	mappings := make([]taxonomy.AttributeMapping, 0, len(rows))
	for i := range rows {
		mappings = append(mappings, *rows[i].ToDomain())
	}
	return mappings, nil
}

// FindByMasterKey returns the mapping for one master key, or nil
func (r *GormAttributeMappingRepository) FindByMasterKey(ctx context.Context, scope taxonomy.MappingScope, masterKey string) (*taxonomy.AttributeMapping, error) {
	var model models.AttributeMappingModel
	if err := scopeQuery(session(ctx, r.db).Preload("Values"), scope).
		Where("master_key = ?", masterKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTargetKey returns the mapping claiming targetKey in scope, or nil
func (r *GormAttributeMappingRepository) FindByTargetKey(ctx context.Context, scope taxonomy.MappingScope, targetKey string) (*taxonomy.AttributeMapping, error) {
	var model models.AttributeMappingModel
	if err := scopeQuery(session(ctx, r.db).Preload("Values"), scope).
		Where("target_key = ?", targetKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts the mapping row and replaces its value rows
func (r *GormAttributeMappingRepository) Save(ctx context.Context, m *taxonomy.AttributeMapping) error {
	var model models.AttributeMappingModel
	model.FromDomain(m)

	db := session(ctx, r.db)
	values := model.Values
	model.Values = nil
	if err := db.Save(&model).Error; err != nil {
		return err
	}
	// Values are owned rows; resubmission replaces them wholesale
	if err := db.Where("attribute_mapping_id = ?", model.ID).
		Delete(&models.AttributeValueMappingModel{}).Error; err != nil {
		return err
	}
	if len(values) > 0 {
		if err := db.Create(&values).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a mapping and, via cascade, its value rows
func (r *GormAttributeMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := session(ctx, r.db)
	if err := db.Where("attribute_mapping_id = ?", id).
		Delete(&models.AttributeValueMappingModel{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.AttributeMappingModel{}, "id = ?", id).Error
}

// DeleteOutsideMasterKeys removes every mapping in scope whose master key is
// not in keep. With an empty keep list the whole scope is cleared.
func (r *GormAttributeMappingRepository) DeleteOutsideMasterKeys(ctx context.Context, scope taxonomy.MappingScope, keep []string) (int64, error) {
	db := session(ctx, r.db)

	var ids []uuid.UUID
	q := scopeQuery(db.Model(&models.AttributeMappingModel{}), scope)
	if len(keep) > 0 {
		q = q.Where("master_key NOT IN ?", keep)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := db.Where("attribute_mapping_id IN ?", ids).
		Delete(&models.AttributeValueMappingModel{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id IN ?", ids).Delete(&models.AttributeMappingModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormAttributeMappingRepository implements the repository contract
var _ taxonomy.AttributeMappingRepository = (*GormAttributeMappingRepository)(nil)
