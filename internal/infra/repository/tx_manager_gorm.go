package repository

import (
	"context"

	"storefront/internal/infra/telemetry"
	repo "storefront/internal/repository"

	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// storeTx は注文確定・ステータス変更で使うリポジトリを同じ tx に載せる。
// 使われたものだけ作る。
type storeTx struct {
	tx        *gorm.DB
	orders    repo.OrderRepository
	products  repo.ProductRepository
	auditLogs repo.AuditLogRepository
}

func (r *storeTx) Orders() repo.OrderRepository {
	if r.orders == nil {
		r.orders = NewOrderGormRepository(r.tx)
	}
	return r.orders
}

func (r *storeTx) Products() repo.ProductRepository {
	if r.products == nil {
		r.products = NewProductGormRepository(r.tx)
	}
	return r.products
}

func (r *storeTx) AuditLogs() repo.AuditLogRepository {
	if r.auditLogs == nil {
		r.auditLogs = NewAuditLogGormRepository(r.tx)
	}
	return r.auditLogs
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// WithinTx は fn を1トランザクションで実行する。在庫減算や監査ログが失敗すれば注文ごと戻る。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	ctx, span := telemetry.Tracer().Start(ctx, "db.WithinTx")
	defer span.End()

	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&storeTx{tx: tx})
	})
	if err != nil {
		span.SetStatus(codes.Error, "rolled back")
	}
	return err
}
