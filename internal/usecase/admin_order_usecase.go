package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	"storefront/internal/infra/mailer"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultOrderPageLimit = 20
	maxOrderPageLimit     = 100
)

// ステータス変更メールの送信
type Mailer interface {
	SendStatus(ctx context.Context, m mailer.StatusMail) error
}

type AdminOrderUsecase struct {
	orderRepo repo.OrderRepository
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	mailer    Mailer
}

// mailer が nil ならメール送信は常に失敗扱い
func NewAdminOrderUsecase(orderRepo repo.OrderRepository, tx repo.TransactionManager, auditRepo repo.AuditLogRepository, m Mailer) *AdminOrderUsecase {
	return &AdminOrderUsecase{orderRepo: orderRepo, tx: tx, auditRepo: auditRepo, mailer: m}
}

type AdminOrderListInput struct {
	Page   int
	Limit  int
	Status string
}

type AdminOrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

type OrderStats struct {
	TotalOrders     int64           `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingOrders   int64           `json:"pendingOrders"`
	CompletedOrders int64           `json:"completedOrders"`
	CancelledOrders int64           `json:"cancelledOrders"`
}

type NotifyInput struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

// 注文一覧（新しい順）
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderListInput) (AdminOrderListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = defaultOrderPageLimit
	}
	// page/limitの最低限チェック
	if in.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidBody)
	}
	if in.Limit < 1 || in.Limit > maxOrderPageLimit {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidBody)
	}

	status := strings.TrimSpace(in.Status)
	if status != "" {
		if _, ok := model.ParseOrderStatus(status); !ok {
			return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidStatus)
		}
	}

	orders, total, err := u.orderRepo.ListAdmin(ctx, repo.AdminOrderListFilter{Page: in.Page, Limit: in.Limit, Status: status})
	if err != nil {
		slog.ErrorContext(ctx, "list orders", "err", err)
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return AdminOrderListOutput{Orders: orders, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID string) (model.Order, error) {
	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "find order", "order_id", orderID, "err", err)
		return model.Order{}, errDB()
	}
	return o, nil
}

// UpdateStatus はステータスを変えて更新後の注文を返す。
// どのステータスからでも変更できる(誤ったキャンセルの取り消しなど)。同じステータスなら何もしない。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorID, orderID, status string) (model.Order, error) {
	newStatus, ok := model.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidStatus)
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
		}
		if err != nil {
			return errDB()
		}

		if o.Status == newStatus {
			return nil
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, i18n.MsgNotFound)
			}
			return errDB()
		}

		// 監査ログはステータス更新と同じTxで
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   toAuditJSON(map[string]model.OrderStatus{"status": o.Status}),
			AfterJSON:    toAuditJSON(map[string]model.OrderStatus{"status": newStatus}),
			CreatedAt:    time.Now(),
		}); err != nil {
			return errDB()
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); !ok {
			slog.ErrorContext(ctx, "update order status", "order_id", orderID, "err", err)
			err = errDB()
		}
		return model.Order{}, err
	}
	return u.Detail(ctx, orderID)
}

// Stats は件数と売上を並行に集計する
func (u *AdminOrderUsecase) Stats(ctx context.Context) (OrderStats, error) {
	var st OrderStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		st.TotalOrders, err = u.orderRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalRevenue, err = u.orderRepo.SumTotal(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.PendingOrders, err = u.orderRepo.CountByStatus(gctx, model.OrderStatusPending)
		return err
	})
	g.Go(func() (err error) {
		st.CompletedOrders, err = u.orderRepo.CountByStatus(gctx, model.OrderStatusCompleted)
		return err
	})
	g.Go(func() (err error) {
		st.CancelledOrders, err = u.orderRepo.CountByStatus(gctx, model.OrderStatusCancelled)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "order stats", "err", err)
		return OrderStats{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return st, nil
}

// Notify は注文のメールアドレスへステータス変更メールを送る
func (u *AdminOrderUsecase) Notify(ctx context.Context, actorID string, in NotifyInput) error {
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return NewValidationError(validator.FieldErrors{"orderId": i18n.MsgFieldRequired})
	}
	status, ok := model.ParseOrderStatus(strings.TrimSpace(in.NewStatus))
	if !ok {
		return NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidStatus)
	}

	o, err := u.Detail(ctx, orderID)
	if err != nil {
		return err
	}

	if u.mailer == nil {
		slog.WarnContext(ctx, "mailer not configured", "order_id", orderID)
		return NewHTTPError(http.StatusInternalServerError, i18n.MsgMailFailed)
	}
	err = u.mailer.SendStatus(ctx, mailer.StatusMail{
		To:        o.Email,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		OrderID:   o.ID,
		Status:    string(status),
	})
	if err != nil {
		slog.ErrorContext(ctx, "send status mail", "order_id", orderID, "err", err)
		return NewHTTPError(http.StatusInternalServerError, i18n.MsgMailFailed)
	}

	writeAudit(ctx, u.auditRepo, actorID, model.AuditActionNotifyOrder, model.AuditResourceOrder, orderID, nil, map[string]string{"status": string(status), "to": o.Email})
	return nil
}
