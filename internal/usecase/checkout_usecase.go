package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	"storefront/internal/infra/telemetry"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// 注文確定を外へ知らせる（管理画面のライブ更新など）
type OrderPublisher interface {
	PublishOrder(order model.Order)
}

type CheckoutUsecase struct {
	tx           repo.TransactionManager
	sessions     *cart.Sessions
	settingsRepo repo.SettingsRepository
	publisher    OrderPublisher
	now          func() time.Time
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	sessions *cart.Sessions,
	settingsRepo repo.SettingsRepository,
	publisher OrderPublisher,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:           tx,
		sessions:     sessions,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

type PlaceOrderInput struct {
	Shipping validator.Shipping
	// ログイン中なら注文に紐づける
	UserID *string
}

// PlaceOrder はカートから注文を作り、サイズごとの在庫を減らす。
// 注文の保存と在庫更新は1トランザクション。失敗したらカートはそのまま。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sessionID string, in PlaceOrderInput) (order model.Order, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "checkout.PlaceOrder")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if fields := validator.ValidateShipping(in.Shipping); !fields.OK() {
		return model.Order{}, NewValidationError(fields)
	}
	form := in.Shipping.Trim()

	if !cart.ValidSessionID(sessionID) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, i18n.MsgCartEmpty)
	}
	st, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		slog.ErrorContext(ctx, "open cart", "session", sessionID, "err", err)
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgOrderFailed)
	}
	items := st.Items()
	if len(items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, i18n.MsgCartEmpty)
	}
	span.SetAttributes(attribute.Int("cart.lines", len(items)))

	settings, err := u.settingsRepo.Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		settings = model.DefaultSettings()
	} else if err != nil {
		slog.ErrorContext(ctx, "load settings", "err", err)
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgOrderFailed)
	}

	subtotal := cart.Total(items)
	shipping := settings.ShippingFor(subtotal)

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: it.ProductID,
			Size:      it.Size,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	draft := model.Order{
		UserID:    in.UserID,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		Address:   form.Address,
		City:      form.City,
		Country:   form.Country,
		Notes:     form.Notes,
		Items:     orderItems,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
		Status:    model.OrderStatusPending,
		CreatedAt: u.now(),
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Orders().Create(ctx, draft)
		if err != nil {
			slog.ErrorContext(ctx, "create order", "err", err)
			return NewHTTPError(http.StatusInternalServerError, i18n.MsgOrderFailed)
		}

		//在庫は max(0, stock - qty)
		for _, it := range items {
			if err := r.Products().DecrementSizeStock(ctx, it.ProductID, it.Size, it.Quantity); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusBadRequest, i18n.MsgProductUnavail)
				}
				if errors.Is(err, repo.ErrInvalidQuantity) {
					return NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidQuantity)
				}
				slog.ErrorContext(ctx, "decrement stock", "product_id", it.ProductID, "size", it.Size, "err", err)
				return NewHTTPError(http.StatusInternalServerError, i18n.MsgOrderFailed)
			}
			if err := r.Products().IncrementSold(ctx, it.ProductID, it.Quantity); err != nil {
				slog.ErrorContext(ctx, "increment sold", "product_id", it.ProductID, "err", err)
				return NewHTTPError(http.StatusInternalServerError, i18n.MsgOrderFailed)
			}
		}

		order = created
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	// 注文した分だけカートから外す。確定済みなので失敗してもエラーにしない
	if cerr := st.Consume(ctx, items); cerr != nil {
		slog.WarnContext(ctx, "consume cart after order", "session", sessionID, "order_id", order.ID, "err", cerr)
	}
	if u.publisher != nil {
		u.publisher.PublishOrder(order)
	}

	span.SetAttributes(attribute.String("order.id", order.ID))
	slog.InfoContext(ctx, "order placed", "order_id", order.ID, "lines", len(items), "total", order.Total.String())
	return order, nil
}
