package model

import (
	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
)

// 注文時点のカート行のスナップショット
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string          `gorm:"type:varchar(36);not null;index" json:"-"`
	ProductID string          `gorm:"type:varchar(36);not null;index" json:"productId"`
	Size      string          `gorm:"type:varchar(50);not null" json:"size"`
	Name      i18n.Text       `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"type:text" json:"image"`
}

// LineTotal は price × quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
