package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	CategoryID   string
	FeaturedOnly bool
	// IDs が空でなければそのIDだけ（お気に入りなど）
	IDs []string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 表示順 → 作成順で返す。サイズも読み込む。
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	// 売れた数の多い順
	BestSellers(ctx context.Context, limit int) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// サイズは丸ごと置き換える
	Update(ctx context.Context, p model.Product) (model.Product, error)
	Delete(ctx context.Context, id string) error

	// 在庫を qty 減らす。0未満にはしない。該当サイズが無ければ ErrNotFound。
	DecrementSizeStock(ctx context.Context, productID, size string, qty int64) error
	IncrementSold(ctx context.Context, productID string, qty int64) error
}
