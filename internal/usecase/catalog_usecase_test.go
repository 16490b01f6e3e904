package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogProducts() []model.Product {
	return []model.Product{
		{
			ID:         "p1",
			Name:       i18n.NewText("Rose Musk", "مسك الورد"),
			CategoryID: "c-women",
			Sizes:      []model.ProductSize{{Label: "50ml", Price: dec("80")}},
		},
		{
			ID:         "p2",
			Name:       i18n.NewText("Amber Oud", "عود العنبر"),
			CategoryID: "c-men",
			Sizes:      []model.ProductSize{{Label: "100ml", Price: dec("300")}},
		},
	}
}

func TestCatalogUsecase_ListProducts_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("List", mock.Anything, repo.ProductListQuery{}).Return(catalogProducts(), nil)

	uc := usecase.NewCatalogUsecase(products, new(CategoryRepoMock), new(SettingsRepoMock), time.Minute)

	_, err := uc.ListProducts(ctx, usecase.ListProductsInput{Lang: i18n.EN})
	require.NoError(t, err)
	_, err = uc.ListProducts(ctx, usecase.ListProductsInput{Lang: i18n.EN, CategoryID: "c-men"})
	require.NoError(t, err)
	products.AssertNumberOfCalls(t, "List", 1)

	uc.Invalidate()
	_, err = uc.ListProducts(ctx, usecase.ListProductsInput{Lang: i18n.EN})
	require.NoError(t, err)
	products.AssertNumberOfCalls(t, "List", 2)
}

func TestCatalogUsecase_ListProducts_Filters(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("List", mock.Anything, repo.ProductListQuery{}).Return(catalogProducts(), nil)

	uc := usecase.NewCatalogUsecase(products, new(CategoryRepoMock), new(SettingsRepoMock), time.Minute)

	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{Lang: i18n.AR, Search: "عود"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ID)

	hi := decimal.NewFromInt(100)
	out, err = uc.ListProducts(ctx, usecase.ListProductsInput{Lang: i18n.EN, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ID)
}

func TestCatalogUsecase_ListProducts_InvalidRange(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(ProductRepoMock), new(CategoryRepoMock), new(SettingsRepoMock), time.Minute)

	lo, hi := decimal.NewFromInt(200), decimal.NewFromInt(100)
	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{MinPrice: &lo, MaxPrice: &hi})
	assertHTTPError(t, err, http.StatusBadRequest, i18n.MsgInvalidPriceRange)
}

func TestCatalogUsecase_ListProducts_RepoError(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	uc := usecase.NewCatalogUsecase(products, new(CategoryRepoMock), new(SettingsRepoMock), time.Minute)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{})
	assertHTTPError(t, err, http.StatusInternalServerError, i18n.MsgFetchFailed)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCatalogUsecase_GetProduct_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewCatalogUsecase(products, new(CategoryRepoMock), new(SettingsRepoMock), time.Minute)

	_, err := uc.GetProduct(context.Background(), "nope")
	assertHTTPError(t, err, http.StatusNotFound, i18n.MsgProductNotFound)
}

func TestCatalogUsecase_GetProduct_EmptySlices(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, "bare").Return(model.Product{ID: "bare"}, nil)

	uc := usecase.NewCatalogUsecase(products, new(CategoryRepoMock), new(SettingsRepoMock), time.Minute)

	p, err := uc.GetProduct(context.Background(), "bare")
	require.NoError(t, err)
	assert.NotNil(t, p.Sizes)
	assert.NotNil(t, p.Images)
}

func TestCatalogUsecase_GetCategory(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("List", mock.Anything, repo.ProductListQuery{}).Return(catalogProducts(), nil)
	categories := new(CategoryRepoMock)
	categories.On("FindByID", mock.Anything, "c-men").Return(model.Category{ID: "c-men", Name: i18n.NewText("Men", "رجال")}, nil)

	uc := usecase.NewCatalogUsecase(products, categories, new(SettingsRepoMock), time.Minute)

	out, err := uc.GetCategory(ctx, "c-men", i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, "Men", out.Category.Name.EN)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "p2", out.Products[0].ID)
}

func TestCatalogUsecase_GetSettings_DefaultsWhenMissing(t *testing.T) {
	settings := new(SettingsRepoMock)
	settings.On("Get", mock.Anything).Return(model.Settings{}, repo.ErrNotFound)

	uc := usecase.NewCatalogUsecase(new(ProductRepoMock), new(CategoryRepoMock), settings, time.Minute)

	s, err := uc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AED", s.Currency)
	assert.True(t, s.ShippingFor(dec("10")).IsZero())
}
