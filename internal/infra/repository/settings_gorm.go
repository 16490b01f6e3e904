package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsGormRepository struct {
	db *gorm.DB
}

func NewSettingsGormRepository(db *gorm.DB) repo.SettingsRepository {
	return &settingsGormRepository{db: db}
}

func (r *settingsGormRepository) Get(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	if err := r.db.WithContext(ctx).Where("id = ?", model.SettingsID).First(&s).Error; err != nil {
		return model.Settings{}, mapError(err)
	}
	return s, nil
}

// id=general に upsert
func (r *settingsGormRepository) Save(ctx context.Context, s model.Settings) (model.Settings, error) {
	s.ID = model.SettingsID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&s).Error
	if err != nil {
		return model.Settings{}, mapError(err)
	}
	return r.Get(ctx)
}
