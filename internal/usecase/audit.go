package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

func toAuditJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// writeAudit は監査ログを1件残す。
// 失敗しても本来の操作は成功扱いにし、ログだけ出す。
func writeAudit(ctx context.Context, audits repo.AuditLogRepository, actor string, action model.AuditAction, resource model.AuditResourceType, resourceID string, before, after interface{}) {
	if audits == nil {
		return
	}
	err := audits.Create(ctx, model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   toAuditJSON(before),
		AfterJSON:    toAuditJSON(after),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "write audit log", "action", action, "resource", resource, "resource_id", resourceID, "err", err)
	}
}
