package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	"storefront/internal/infra/telemetry"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const (
	cacheKeyAllProducts      = "products:all"
	cacheKeyFeaturedProducts = "products:featured"
	cacheKeyCategories       = "categories"
	defaultBestSellerLimit   = 8
)

// CatalogUsecase は公開側の一覧・詳細。一覧はTTLキャッシュする。
type CatalogUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	settingsRepo repo.SettingsRepository

	products   *catalog.Cache[[]model.Product]
	categories *catalog.Cache[[]model.Category]
}

func NewCatalogUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	settingsRepo repo.SettingsRepository,
	cacheTTL time.Duration,
) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		settingsRepo: settingsRepo,
		products:     catalog.NewCache[[]model.Product](cacheTTL),
		categories:   catalog.NewCache[[]model.Category](cacheTTL),
	}
}

type ListProductsInput struct {
	CategoryID   string
	Search       string
	Lang         i18n.Lang
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	FeaturedOnly bool
}

type CategoryDetailOutput struct {
	Category model.Category  `json:"category"`
	Products []model.Product `json:"products"`
}

// Invalidate は管理画面の更新後に呼ぶ
func (u *CatalogUsecase) Invalidate() {
	u.products.Invalidate()
	u.categories.Invalidate()
}

func (u *CatalogUsecase) loadProducts(ctx context.Context, featured bool) ([]model.Product, error) {
	key := cacheKeyAllProducts
	if featured {
		key = cacheKeyFeaturedProducts
	}
	if v, ok := u.products.Get(key); ok {
		return v, nil
	}

	ctx, span := telemetry.Tracer().Start(ctx, "catalog.loadProducts")
	defer span.End()
	span.SetAttributes(attribute.Bool("featured", featured))

	ps, err := u.productRepo.List(ctx, repo.ProductListQuery{FeaturedOnly: featured})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := make([]model.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, catalog.SortSizes(catalog.Sanitize(p)))
	}
	u.products.Set(key, out)
	return out, nil
}

// ListProducts はカテゴリ・検索語・価格帯で絞り込む
func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return []model.Product{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidPriceRange)
	}

	ps, err := u.loadProducts(ctx, in.FeaturedOnly)
	if err != nil {
		slog.ErrorContext(ctx, "list products", "err", err)
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}

	return catalog.Filter(ps, catalog.Query{
		CategoryID: in.CategoryID,
		Search:     in.Search,
		Lang:       in.Lang,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
	}), nil
}

// BestSellers は売れた数の多い順
func (u *CatalogUsecase) BestSellers(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultBestSellerLimit
	}
	ps, err := u.productRepo.BestSellers(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "best sellers", "err", err)
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	out := make([]model.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, catalog.Sanitize(p))
	}
	return out, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "get product", "product_id", id, "err", err)
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return catalog.Sanitize(p), nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	if v, ok := u.categories.Get(cacheKeyCategories); ok {
		return v, nil
	}
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "list categories", "err", err)
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	u.categories.Set(cacheKeyCategories, cats)
	return cats, nil
}

// GetCategory はカテゴリとその商品
func (u *CatalogUsecase) GetCategory(ctx context.Context, id string, lang i18n.Lang) (CategoryDetailOutput, error) {
	c, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CategoryDetailOutput{}, NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "get category", "category_id", id, "err", err)
		return CategoryDetailOutput{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}

	ps, err := u.ListProducts(ctx, ListProductsInput{CategoryID: id, Lang: lang})
	if err != nil {
		return CategoryDetailOutput{}, err
	}
	return CategoryDetailOutput{Category: c, Products: ps}, nil
}

// GetSettings は保存が無ければ初期値
func (u *CatalogUsecase) GetSettings(ctx context.Context) (model.Settings, error) {
	s, err := u.settingsRepo.Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "get settings", "err", err)
		return model.Settings{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return s, nil
}
