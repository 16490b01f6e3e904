package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func preloadSizes(db *gorm.DB) *gorm.DB {
	return db.Preload("Sizes", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc").Order("id asc")
	})
}

// 表示順で商品一覧を返す
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	tx := preloadSizes(r.db.WithContext(ctx).Model(&model.Product{}))

	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.FeaturedOnly {
		tx = tx.Where("featured = ?", true)
	}
	if q.IDs != nil {
		if len(q.IDs) == 0 {
			return []model.Product{}, nil
		}
		tx = tx.Where("id IN ?", q.IDs)
	}

	var products []model.Product
	if err := tx.Order("display_order asc").Order("created_at asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 売れ筋
func (r *ProductGormRepository) BestSellers(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	var products []model.Product
	err := preloadSizes(r.db.WithContext(ctx)).
		Order("sold_count desc").
		Order("display_order asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := preloadSizes(r.db.WithContext(ctx)).Where("id = ?", id).First(&p).Error
	if err != nil {
		return model.Product{}, mapError(err)
	}
	return p, nil
}

// 商品の作成（サイズも一緒に）
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	for i := range p.Sizes {
		p.Sizes[i].ID = 0
		p.Sizes[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, mapError(err)
	}
	return p, nil
}

// 商品の更新。サイズは削除して入れ直す。
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) (model.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"name_en":        p.Name.EN,
			"name_ar":        p.Name.AR,
			"description_en": p.Description.EN,
			"description_ar": p.Description.AR,
			"category_id":    p.CategoryID,
			"images":         p.Images,
			"featured":       p.Featured,
			"sold_count":     p.SoldCount,
			"display_order":  p.Order,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		if err := tx.Where("product_id = ?", p.ID).Delete(&model.ProductSize{}).Error; err != nil {
			return err
		}
		if len(p.Sizes) == 0 {
			return nil
		}
		sizes := make([]model.ProductSize, 0, len(p.Sizes))
		for i, s := range p.Sizes {
			s.ID = 0
			s.ProductID = p.ID
			s.Position = i
			sizes = append(sizes, s)
		}
		return tx.Create(&sizes).Error
	})
	if err != nil {
		return model.Product{}, mapError(err)
	}
	return r.FindByID(ctx, p.ID)
}

// 商品削除（サイズも消す）
func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductSize{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// stock = max(0, stock - qty) を1文で更新する（読み込み→書き込みの間に割り込まれない）
// qty < 1 は在庫を増やしてしまうので拒否する
func (r *ProductGormRepository) DecrementSizeStock(ctx context.Context, productID, size string, qty int64) error {
	if qty < 1 {
		return repo.ErrInvalidQuantity
	}
	res := r.db.WithContext(ctx).
		Model(&model.ProductSize{}).
		Where("product_id = ? AND size = ?", productID, size).
		UpdateColumn("stock", gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", qty, qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 売れた数を加算
func (r *ProductGormRepository) IncrementSold(ctx context.Context, productID string, qty int64) error {
	if qty < 1 {
		return repo.ErrInvalidQuantity
	}
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		UpdateColumn("sold_count", gorm.Expr("sold_count + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
