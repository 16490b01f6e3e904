package validator

import (
	"fmt"
	"strings"

	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
)

// SizeInput は商品フォームのサイズ1行
type SizeInput struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// ValidateCategory は名前（どちらかの言語）だけ必須
func ValidateCategory(name i18n.Text) FieldErrors {
	errs := FieldErrors{}
	if i18n.IsEmpty(name) {
		errs.add("name", i18n.MsgFieldRequired)
	}
	return errs
}

// ValidateProduct は名前・カテゴリ・サイズ（価格/在庫は0以上、ラベル重複なし）
func ValidateProduct(name i18n.Text, categoryID string, sizes []SizeInput) FieldErrors {
	errs := FieldErrors{}
	if i18n.IsEmpty(name) {
		errs.add("name", i18n.MsgFieldRequired)
	}
	if strings.TrimSpace(categoryID) == "" {
		errs.add("categoryId", i18n.MsgFieldRequired)
	}

	seen := map[string]bool{}
	for i, s := range sizes {
		label := strings.TrimSpace(s.Size)
		if label == "" || seen[label] {
			errs.add(fmt.Sprintf("sizes[%d].size", i), i18n.MsgInvalidSize)
		}
		seen[label] = true
		if s.Price.IsNegative() {
			errs.add(fmt.Sprintf("sizes[%d].price", i), i18n.MsgInvalidPrice)
		}
		if s.Stock < 0 {
			errs.add(fmt.Sprintf("sizes[%d].stock", i), i18n.MsgInvalidStock)
		}
	}
	return errs
}
