package handler

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/cart"
	"storefront/internal/i18n"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const cartSessionMaxAge = 30 * 24 * time.Hour

// /cartのHTTP（ゲストでも使える。セッションIDで区別）
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID string `json:"id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	ProductID string `json:"id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

// /cart, /cart/items を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.PATCH("/items", h.patchItem)
	g.DELETE("/items", h.deleteItem)
	g.DELETE("", h.clear)
}

// cartSession はヘッダ → Cookie の順でセッションIDを探す。
// 無い・不正なら新しく発行してCookieとヘッダで返す。
func cartSession(c echo.Context) string {
	id := strings.TrimSpace(c.Request().Header.Get(cart.SessionHeader))
	if id == "" {
		if ck, err := c.Cookie(cart.SessionCookieName); err == nil {
			id = strings.TrimSpace(ck.Value)
		}
	}
	if cart.ValidSessionID(id) {
		c.Response().Header().Set(cart.SessionHeader, id)
		return id
	}

	id = cart.NewSessionID()
	c.SetCookie(&http.Cookie{
		Name:     cart.SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cartSessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Response().Header().Set(cart.SessionHeader, id)
	return id
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), cartSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}
	// 数量省略は1個
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	out, err := h.uc.AddItem(c.Request().Context(), cartSession(c), usecase.AddCartInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), cartSession(c), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /cart/items?id=&size=
func (h *CartHandler) deleteItem(c echo.Context) error {
	productID := strings.TrimSpace(c.QueryParam("id"))
	if productID == "" {
		return badRequest(c, i18n.MsgInvalidID)
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), cartSession(c), productID, c.QueryParam("size"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	out, err := h.uc.Clear(c.Request().Context(), cartSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
