package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// AuditLogFilter は nil の項目を条件に含めない
type AuditLogFilter struct {
	ActorUserID  *string
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	// 0 なら既定件数
	Limit  int
	Offset int
}

// 管理者操作の履歴
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
