package db

import "storefront/internal/domain/model"

// Models はマイグレーション対象
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductSize{},
		&model.Order{},
		&model.OrderItem{},
		&model.Settings{},
		&model.Favorite{},
		&model.AuditLog{},
	}
}
