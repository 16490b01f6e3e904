// Package cart はセッションごとのカートと、その永続化アダプタを扱う。
package cart

import (
	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
)

// Item はカートの1行。(ProductID, Size) で一意。
type Item struct {
	ProductID string          `json:"id"`
	Size      string          `json:"size"`
	Name      i18n.Text       `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
}

// Key はカート行の複合キー
type Key struct {
	ProductID string
	Size      string
}

func (it Item) Key() Key {
	return Key{ProductID: it.ProductID, Size: it.Size}
}

// LineTotal は price × quantity
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(it.Quantity))
}
