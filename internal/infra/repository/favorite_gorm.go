package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type favoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) repo.FavoriteRepository {
	return &favoriteGormRepository{db: db}
}

func (r *favoriteGormRepository) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Pluck("product_id", &ids).Error
	if err != nil {
		return []string{}, err
	}
	return ids, nil
}

func (r *favoriteGormRepository) Add(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Favorite{UserID: userID, ProductID: productID}).Error
}

// 行が無くても成功扱い
func (r *favoriteGormRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{}).Error
}
