package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase はセッションごとのカート操作
type CartUsecase struct {
	sessions    *cart.Sessions
	productRepo repo.ProductRepository
}

func NewCartUsecase(sessions *cart.Sessions, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{sessions: sessions, productRepo: productRepo}
}

type CartOutput struct {
	Items     []cart.Item     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int64           `json:"itemCount"`
}

type AddCartInput struct {
	ProductID string
	Size      string
	Quantity  int64
}

func toCartOutput(items []cart.Item) CartOutput {
	return CartOutput{Items: items, Total: cart.Total(items), ItemCount: cart.ItemCount(items)}
}

func (u *CartUsecase) store(ctx context.Context, sessionID string) (*cart.Store, error) {
	if !cart.ValidSessionID(sessionID) {
		return nil, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidID)
	}
	st, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		slog.ErrorContext(ctx, "open cart", "session", sessionID, "err", err)
		return nil, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return st, nil
}

// 数量の上限超えは 400、それ以外は保存失敗
func cartWriteError(ctx context.Context, sessionID string, err error) error {
	switch {
	case errors.Is(err, cart.ErrQuantityTooLarge):
		return NewHTTPError(http.StatusBadRequest, i18n.MsgQuantityTooLarge)
	case errors.Is(err, cart.ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidQuantity)
	}
	slog.ErrorContext(ctx, "save cart", "session", sessionID, "err", err)
	return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
}

// GetCart は現在のカート。読むだけなので Store は保持しない。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	if !cart.ValidSessionID(sessionID) {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidID)
	}
	items, err := u.sessions.Peek(ctx, sessionID)
	if err != nil {
		slog.ErrorContext(ctx, "open cart", "session", sessionID, "err", err)
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return toCartOutput(items), nil
}

// AddItem は商品サイズを追加する。名前・価格・画像はこの時点の値を保持する。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddCartInput) (CartOutput, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidID)
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidQuantity)
	}
	if in.Quantity > cart.MaxLineQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgQuantityTooLarge)
	}
	st, err := u.store(ctx, sessionID)
	if err != nil {
		return CartOutput{}, err
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, i18n.MsgProductNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "find product", "product_id", in.ProductID, "err", err)
		return CartOutput{}, errDB()
	}

	size, ok := p.FindSize(in.Size)
	if !ok {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidSize)
	}

	err = st.Add(ctx, cart.Item{
		ProductID: p.ID,
		Size:      size.Label,
		Name:      p.Name,
		Price:     size.Price,
		Image:     p.FirstImage(),
		Quantity:  in.Quantity,
	})
	if err != nil {
		return CartOutput{}, cartWriteError(ctx, sessionID, err)
	}
	return toCartOutput(st.Items()), nil
}

// UpdateQuantity は数量を上書きする（1未満は無視、上限超えは 400）
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID, productID, size string, quantity int64) (CartOutput, error) {
	st, err := u.store(ctx, sessionID)
	if err != nil {
		return CartOutput{}, err
	}
	if err := st.UpdateQuantity(ctx, productID, size, quantity); err != nil {
		return CartOutput{}, cartWriteError(ctx, sessionID, err)
	}
	return toCartOutput(st.Items()), nil
}

// RemoveItem は1行消す
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID, productID, size string) (CartOutput, error) {
	st, err := u.store(ctx, sessionID)
	if err != nil {
		return CartOutput{}, err
	}
	if err := st.Remove(ctx, productID, size); err != nil {
		slog.ErrorContext(ctx, "save cart", "session", sessionID, "err", err)
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
	}
	return toCartOutput(st.Items()), nil
}

// Clear は全部消す
func (u *CartUsecase) Clear(ctx context.Context, sessionID string) (CartOutput, error) {
	st, err := u.store(ctx, sessionID)
	if err != nil {
		return CartOutput{}, err
	}
	if err := st.Clear(ctx); err != nil {
		slog.ErrorContext(ctx, "save cart", "session", sessionID, "err", err)
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
	}
	return toCartOutput(st.Items()), nil
}
