package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements shop.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetDocument returns the raw JSON stored under key, or nil when absent
func (r *GormSettingsRepository) GetDocument(ctx context.Context, shopID uuid.UUID, key string) ([]byte, error) {
	var model models.ShopSettingModel
	if err := session(ctx, r.db).
		Where("shop_id = ? AND key = ?", shopID, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(model.Value), nil
}

// PutDocument replaces the JSON stored under key for the shop
func (r *GormSettingsRepository) PutDocument(ctx context.Context, shopID uuid.UUID, key string, doc []byte) error {
	now := time.Now()
	model := models.ShopSettingModel{
		ID:        uuid.New(),
		ShopID:    shopID,
		Key:       key,
		Value:     string(doc),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return session(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
}

// Ensure GormSettingsRepository implements shop.SettingsRepository
var _ shop.SettingsRepository = (*GormSettingsRepository)(nil)
