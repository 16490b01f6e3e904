package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"storefront/internal/i18n"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 設定本文の上限
const maxSettingsBody = 1 << 20

type AdminSettingsHandler struct {
	uc *usecase.AdminSettingsUsecase
}

func NewAdminSettingsHandler(uc *usecase.AdminSettingsUsecase) *AdminSettingsHandler {
	return &AdminSettingsHandler{uc: uc}
}

func (h *AdminSettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings", h.get)
	g.PUT("/settings", h.save)
	g.POST("/settings/images/:section", h.uploadImage)
}

func (h *AdminSettingsHandler) get(c echo.Context) error {
	s, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// 部分更新なので構造体に Bind せず生の JSON を渡す
func (h *AdminSettingsHandler) save(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSettingsBody))
	if err != nil || !json.Valid(raw) {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	s, err := h.uc.Save(c.Request().Context(), actorID, json.RawMessage(raw))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminSettingsHandler) uploadImage(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	section, ok := usecase.ParseSettingsSection(c.Param("section"))
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusNotFound, i18n.MsgNotFound))
	}

	up, closer, err := formImage(c)
	if err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}
	defer closer.Close()

	url, err := h.uc.UploadImage(c.Request().Context(), actorID, section, up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
