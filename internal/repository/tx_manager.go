package repository

import "context"

// TxRepos は1つのトランザクションに束ねたリポジトリ。
// 注文確定（注文作成＋在庫減算）とステータス変更（更新＋監査ログ）で使う。
type TxRepos interface {
	Orders() OrderRepository
	Products() ProductRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager は fn がエラーを返したらロールバック、nil ならコミットする
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
