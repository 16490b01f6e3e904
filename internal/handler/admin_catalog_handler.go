package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"storefront/internal/i18n"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	uploadFormField = "file"
)

// /admin/categories と /admin/products をまとめる
type AdminCatalogHandler struct {
	uc *usecase.AdminCatalogUsecase
}

func NewAdminCatalogHandler(uc *usecase.AdminCatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// g は認証・権限チェック済みの /admin グループ
func (h *AdminCatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.listCategories)
	g.POST("/categories", h.upsertCategory)
	g.DELETE("/categories/:id", h.deleteCategory)
	g.POST("/categories/image", h.uploadCategoryImage)

	g.GET("/products", h.listProducts)
	g.GET("/products/export", h.exportProducts)
	g.POST("/products", h.upsertProduct)
	g.DELETE("/products/:id", h.deleteProduct)
	g.POST("/products/image", h.uploadProductImage)
}

func (h *AdminCatalogHandler) listCategories(c echo.Context) error {
	cats, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *AdminCatalogHandler) upsertCategory(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	var req usecase.CategoryInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	cats, err := h.uc.UpsertCategory(c.Request().Context(), actorID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	cats, err := h.uc.DeleteCategory(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *AdminCatalogHandler) uploadCategoryImage(c echo.Context) error {
	return h.upload(c, h.uc.UploadCategoryImage)
}

func (h *AdminCatalogHandler) listProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminCatalogHandler) upsertProduct(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	products, err := h.uc.UpsertProduct(c.Request().Context(), actorID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminCatalogHandler) deleteProduct(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	products, err := h.uc.DeleteProduct(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminCatalogHandler) uploadProductImage(c echo.Context) error {
	return h.upload(c, h.uc.UploadProductImage)
}

// 途中で失敗してもヘッダを送らないようにバッファしてから返す
func (h *AdminCatalogHandler) exportProducts(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.uc.ExportProducts(c.Request().Context(), &buf); err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=products.xlsx")
	c.Response().Header().Set("Expires", "0")
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *AdminCatalogHandler) upload(c echo.Context, fn func(ctx context.Context, up usecase.ImageUpload) (string, error)) error {
	up, closer, err := formImage(c)
	if err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}
	defer closer.Close()

	url, err := fn(c.Request().Context(), up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}

// multipart の file フィールドを取り出す
func formImage(c echo.Context) (usecase.ImageUpload, io.Closer, error) {
	fh, err := c.FormFile(uploadFormField)
	if err != nil {
		return usecase.ImageUpload{}, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageUpload{}, nil, err
	}
	return usecase.ImageUpload{Filename: fh.Filename, Body: f}, f, nil
}
