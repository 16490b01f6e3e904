package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type FavoriteRequest struct {
	ProductID string `json:"productId"`
}

type FavoriteIDsResponse struct {
	ProductIDs []string `json:"productIds"`
}

func (h *FavoriteHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/favorites")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("", h.list)
	g.GET("/ids", h.ids)
	g.POST("", h.add)
	g.DELETE("/:productId", h.remove)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	out, err := h.uc.Products(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FavoriteHandler) ids(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	ids, err := h.uc.IDs(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, FavoriteIDsResponse{ProductIDs: ids})
}

func (h *FavoriteHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	ids, err := h.uc.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, FavoriteIDsResponse{ProductIDs: ids})
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	ids, err := h.uc.Remove(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, FavoriteIDsResponse{ProductIDs: ids})
}
