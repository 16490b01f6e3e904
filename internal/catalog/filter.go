package catalog

import (
	"sort"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
)

// Query は一覧の絞り込み条件。ゼロ値は条件なし。
type Query struct {
	CategoryID string
	Search     string
	Lang       i18n.Lang
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// Filter は条件に合う商品を返す。
// 検索語は全語がいずれかの名前/説明に含まれること（AND）。
// 価格帯はどれか1サイズでも入っていればよい。
// 名前が検索語と完全一致する商品を先頭にし、それ以外は元の順序を保つ。
func Filter(products []model.Product, q Query) []model.Product {
	lang := q.Lang
	if lang == "" {
		lang = i18n.Default
	}
	terms := Terms(q.Search)
	out := make([]model.Product, 0, len(products))

	for _, p := range products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if !matchesTerms(p, terms, lang) {
			continue
		}
		if !matchesPrice(p, q.MinPrice, q.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	if len(terms) > 0 {
		want := strings.Join(terms, " ")
		sort.SliceStable(out, func(i, j int) bool {
			return exactName(out[i], want, lang) && !exactName(out[j], want, lang)
		})
	}
	return out
}

func matchesTerms(p model.Product, terms []string, lang i18n.Lang) bool {
	if len(terms) == 0 {
		return true
	}
	name := Normalize(i18n.Resolve(p.Name, lang))
	desc := Normalize(i18n.Resolve(p.Description, lang))
	for _, t := range terms {
		if !strings.Contains(name, t) && !strings.Contains(desc, t) {
			return false
		}
	}
	return true
}

// PriceInRange は min/max の範囲に入るか（nil は無制限）
func PriceInRange(price decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && price.LessThan(*min) {
		return false
	}
	if max != nil && price.GreaterThan(*max) {
		return false
	}
	return true
}

func matchesPrice(p model.Product, min, max *decimal.Decimal) bool {
	if min == nil && max == nil {
		return true
	}
	for _, s := range p.Sizes {
		if PriceInRange(s.Price, min, max) {
			return true
		}
	}
	return false
}

func exactName(p model.Product, want string, lang i18n.Lang) bool {
	return strings.Join(strings.Fields(Normalize(i18n.Resolve(p.Name, lang))), " ") == want
}

// Sanitize は欠けている値を既定値で埋める（nil配列は空配列に）
func Sanitize(p model.Product) model.Product {
	if p.Sizes == nil {
		p.Sizes = []model.ProductSize{}
	}
	if p.Images == nil {
		p.Images = model.StringList{}
	}
	return p
}

// SortSizes はサイズを登録順に並べる
func SortSizes(p model.Product) model.Product {
	sort.SliceStable(p.Sizes, func(i, j int) bool {
		return p.Sizes[i].Position < p.Sizes[j].Position
	})
	return p
}
