package repository

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) repo.OrderRepository {
	return &orderGormRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id asc")
	})
}

// 注文と明細を保存する
func (r *orderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	for i := range order.Items {
		order.Items[i].ID = 0
	}
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, mapError(err)
	}
	return order, nil
}

func (r *orderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	if err := preloadItems(r.db.WithContext(ctx)).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, mapError(err)
	}
	return o, nil
}

func (r *orderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 管理者用の一覧（新しい順）
func (r *orderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	status := strings.TrimSpace(f.Status)
	byStatus := func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Scopes(byStatus).Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var orders []model.Order
	offset := (f.Page - 1) * f.Limit
	err := preloadItems(r.db.WithContext(ctx)).
		Scopes(byStatus).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(f.Limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, 0, err
	}
	return orders, total, nil
}

func (r *orderGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (r *orderGormRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// 全注文の total 合計
func (r *orderGormRepository) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.Order{}).Select("COALESCE(SUM(total), 0)").Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
