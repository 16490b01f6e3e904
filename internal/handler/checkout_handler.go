package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// 注文確定の返却
type CheckoutResponse struct {
	Message string      `json:"message"`
	Order   model.Order `json:"order"`
}

// ログインしていれば注文にユーザーを紐づける（ゲスト購入も可）
func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/checkout", h.checkout, middleware.OptionalAuthJWT(cfg))
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req validator.Shipping
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	in := usecase.PlaceOrderInput{Shipping: req}
	if userID, ok := getUserIDFromContext(c); ok {
		in.UserID = &userID
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), cartSession(c), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{
		Message: i18n.Message(middleware.LangFrom(c), i18n.MsgOrderPlaced),
		Order:   order,
	})
}
