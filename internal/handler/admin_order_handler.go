package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 新規注文の購読先
type OrderStream interface {
	Serve(w http.ResponseWriter, r *http.Request) error
}

type AdminOrderHandler struct {
	uc     *usecase.AdminOrderUsecase
	stream OrderStream
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, stream OrderStream) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, stream: stream}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/stats", h.stats)
	g.GET("/orders/ws", h.subscribe)
	g.GET("/orders/:id", h.detail)
	g.PUT("/orders/:id/status", h.updateStatus)
	g.POST("/orders/notify", h.notify)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	in := usecase.AdminOrderListInput{Status: c.QueryParam("status")}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, i18n.MsgInvalidBody)
		}
		in.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, i18n.MsgInvalidBody)
		}
		in.Limit = l
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) stats(c echo.Context) error {
	st, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	order, err := h.uc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), actorID, c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) notify(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized))
	}

	var req usecase.NotifyInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	if err := h.uc.Notify(c.Request().Context(), actorID, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: i18n.Message(middleware.LangFrom(c), i18n.MsgMailSent)})
}

// WebSocket は Upgrade 後に応答済みなので echo にエラーを返さない
func (h *AdminOrderHandler) subscribe(c echo.Context) error {
	if err := h.stream.Serve(c.Response(), c.Request()); err != nil {
		slog.DebugContext(c.Request().Context(), "order stream closed", "err", err)
	}
	return nil
}
