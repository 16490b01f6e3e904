package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

// 画像の保存先
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	TimestampedKey(prefix, filename string) string
	FieldKey(prefix, filename string) string
}

// アップロードされた1ファイル
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

const (
	categoryImagePrefix = "categories"
	productImagePrefix  = "products"
)

type AdminCatalogUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	auditRepo    repo.AuditLogRepository
	objects      ObjectStore
	cache        Invalidator
}

func NewAdminCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
	objects ObjectStore,
	cache Invalidator,
) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
		objects:      objects,
		cache:        cache,
	}
}

// ID が空なら作成、あれば更新
type CategoryInput struct {
	ID          string    `json:"id"`
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	Image       string    `json:"image"`
	Order       int       `json:"order"`
}

type ProductInput struct {
	ID          string                `json:"id"`
	Name        i18n.Text             `json:"name"`
	Description i18n.Text             `json:"description"`
	CategoryID  string                `json:"categoryId"`
	Sizes       []validator.SizeInput `json:"sizes"`
	Images      []string              `json:"images"`
	Featured    bool                  `json:"featured"`
	SoldCount   *int64                `json:"soldCount"`
	Order       int                   `json:"order"`
}

// =====================
// Categories
// =====================

func (u *AdminCatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "admin list categories", "err", err)
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return cats, nil
}

// UpsertCategory は保存後に一覧を取り直して返す
func (u *AdminCatalogUsecase) UpsertCategory(ctx context.Context, actorID string, in CategoryInput) ([]model.Category, error) {
	name := i18n.TrimText(in.Name)
	if fields := validator.ValidateCategory(name); !fields.OK() {
		return []model.Category{}, NewValidationError(fields)
	}

	return runThenReload(ctx, func(ctx context.Context) error {
		c := model.Category{
			ID:          strings.TrimSpace(in.ID),
			Name:        name,
			Description: i18n.TrimText(in.Description),
			Image:       strings.TrimSpace(in.Image),
			Order:       in.Order,
		}

		if c.ID == "" {
			created, err := u.categoryRepo.Create(ctx, c)
			if err != nil {
				slog.ErrorContext(ctx, "create category", "err", err)
				return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
			}
			writeAudit(ctx, u.auditRepo, actorID, model.AuditActionCreate, model.AuditResourceCategory, created.ID, nil, created)
			return nil
		}

		before, err := u.categoryRepo.FindByID(ctx, c.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
		}
		if err != nil {
			return errDB()
		}
		// 画像が指定されなければ既存を残す
		if c.Image == "" {
			c.Image = before.Image
		}
		after, err := u.categoryRepo.Update(ctx, c)
		if err != nil {
			slog.ErrorContext(ctx, "update category", "category_id", c.ID, "err", err)
			return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
		}
		writeAudit(ctx, u.auditRepo, actorID, model.AuditActionUpdate, model.AuditResourceCategory, c.ID, before, after)
		return nil
	}, u.cache, u.ListCategories)
}

func (u *AdminCatalogUsecase) DeleteCategory(ctx context.Context, actorID, id string) ([]model.Category, error) {
	return runThenReload(ctx, func(ctx context.Context) error {
		before, err := u.categoryRepo.FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
		}
		if err != nil {
			return errDB()
		}
		if err := u.categoryRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
			}
			slog.ErrorContext(ctx, "delete category", "category_id", id, "err", err)
			return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
		}
		writeAudit(ctx, u.auditRepo, actorID, model.AuditActionDelete, model.AuditResourceCategory, id, before, nil)
		return nil
	}, u.cache, u.ListCategories)
}

// UploadCategoryImage は categories/<ミリ秒>_<ファイル名> に保存してURLを返す
func (u *AdminCatalogUsecase) UploadCategoryImage(ctx context.Context, up ImageUpload) (string, error) {
	return u.upload(ctx, u.objects.TimestampedKey(categoryImagePrefix, up.Filename), up)
}

// =====================
// Products
// =====================

func (u *AdminCatalogUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	ps, err := u.productRepo.List(ctx, repo.ProductListQuery{})
	if err != nil {
		slog.ErrorContext(ctx, "admin list products", "err", err)
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return ps, nil
}

func toProductModel(in ProductInput) model.Product {
	sizes := make([]model.ProductSize, 0, len(in.Sizes))
	for _, s := range in.Sizes {
		sizes = append(sizes, model.ProductSize{
			Label: strings.TrimSpace(s.Size),
			Price: s.Price,
			Stock: s.Stock,
		})
	}
	images := make(model.StringList, 0, len(in.Images))
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	p := model.Product{
		ID:          strings.TrimSpace(in.ID),
		Name:        i18n.TrimText(in.Name),
		Description: i18n.TrimText(in.Description),
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Sizes:       sizes,
		Images:      images,
		Featured:    in.Featured,
		Order:       in.Order,
	}
	if in.SoldCount != nil {
		p.SoldCount = *in.SoldCount
	}
	return p
}

// UpsertProduct は保存後に一覧を取り直して返す。
// 更新時に soldCount が省略されたら既存の値を残す。
func (u *AdminCatalogUsecase) UpsertProduct(ctx context.Context, actorID string, in ProductInput) ([]model.Product, error) {
	if fields := validator.ValidateProduct(i18n.TrimText(in.Name), in.CategoryID, in.Sizes); !fields.OK() {
		return []model.Product{}, NewValidationError(fields)
	}
	if in.SoldCount != nil && *in.SoldCount < 0 {
		return []model.Product{}, NewValidationError(validator.FieldErrors{"soldCount": i18n.MsgInvalidStock})
	}

	return runThenReload(ctx, func(ctx context.Context) error {
		p := toProductModel(in)

		if _, err := u.categoryRepo.FindByID(ctx, p.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewValidationError(validator.FieldErrors{"categoryId": i18n.MsgNotFound})
			}
			return errDB()
		}

		if p.ID == "" {
			created, err := u.productRepo.Create(ctx, p)
			if err != nil {
				slog.ErrorContext(ctx, "create product", "err", err)
				return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
			}
			writeAudit(ctx, u.auditRepo, actorID, model.AuditActionCreate, model.AuditResourceProduct, created.ID, nil, created)
			return nil
		}

		before, err := u.productRepo.FindByID(ctx, p.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
		}
		if err != nil {
			return errDB()
		}
		if in.SoldCount == nil {
			p.SoldCount = before.SoldCount
		}
		after, err := u.productRepo.Update(ctx, p)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
			}
			slog.ErrorContext(ctx, "update product", "product_id", p.ID, "err", err)
			return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
		}
		writeAudit(ctx, u.auditRepo, actorID, model.AuditActionUpdate, model.AuditResourceProduct, p.ID, before, after)
		return nil
	}, u.cache, u.ListProducts)
}

func (u *AdminCatalogUsecase) DeleteProduct(ctx context.Context, actorID, id string) ([]model.Product, error) {
	return runThenReload(ctx, func(ctx context.Context) error {
		before, err := u.productRepo.FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
		}
		if err != nil {
			return errDB()
		}
		if err := u.productRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
			}
			slog.ErrorContext(ctx, "delete product", "product_id", id, "err", err)
			return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
		}
		writeAudit(ctx, u.auditRepo, actorID, model.AuditActionDelete, model.AuditResourceProduct, id, before, nil)
		return nil
	}, u.cache, u.ListProducts)
}

// UploadProductImage は products/<ミリ秒>_<ファイル名> に保存してURLを返す
func (u *AdminCatalogUsecase) UploadProductImage(ctx context.Context, up ImageUpload) (string, error) {
	return u.upload(ctx, u.objects.TimestampedKey(productImagePrefix, up.Filename), up)
}

func (u *AdminCatalogUsecase) upload(ctx context.Context, key string, up ImageUpload) (string, error) {
	return uploadImage(ctx, u.objects, key, up)
}

func uploadImage(ctx context.Context, objects ObjectStore, key string, up ImageUpload) (string, error) {
	if up.Body == nil || strings.TrimSpace(up.Filename) == "" {
		return "", NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidBody)
	}
	url, err := objects.Put(ctx, key, up.Body)
	if err != nil {
		slog.ErrorContext(ctx, "upload image", "key", key, "err", err)
		return "", NewHTTPError(http.StatusInternalServerError, i18n.MsgUploadFailed)
	}
	return url, nil
}
