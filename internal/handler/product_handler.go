package handler

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /products /categories /settings の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// 公開カタログのルートを登録
func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/settings", h.settings)
	e.GET("/categories", h.categories)
	e.GET("/categories/:id", h.category)
	e.GET("/products", h.list)
	e.GET("/products/best-sellers", h.bestSellers)
	e.GET("/products/:id", h.detail)
}

func parseDecimalParam(c echo.Context, name string) (*decimal.Decimal, bool) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return nil, false
	}
	return &d, true
}

func (h *CatalogHandler) list(c echo.Context) error {
	minPrice, ok := parseDecimalParam(c, "min_price")
	if !ok {
		return badRequest(c, i18n.MsgInvalidPrice)
	}
	maxPrice, ok := parseDecimalParam(c, "max_price")
	if !ok {
		return badRequest(c, i18n.MsgInvalidPrice)
	}

	featured := false
	if v := c.QueryParam("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, i18n.MsgInvalidBody)
		}
		featured = b
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		CategoryID:   c.QueryParam("category"),
		Search:       c.QueryParam("q"),
		Lang:         middleware.LangFrom(c),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		FeaturedOnly: featured,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) bestSellers(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, i18n.MsgInvalidBody)
		}
		limit = l
	}

	out, err := h.uc.BestSellers(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) detail(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return badRequest(c, i18n.MsgInvalidID)
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) categories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) category(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return badRequest(c, i18n.MsgInvalidID)
	}

	out, err := h.uc.GetCategory(c.Request().Context(), id, middleware.LangFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) settings(c echo.Context) error {
	s, err := h.uc.GetSettings(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
