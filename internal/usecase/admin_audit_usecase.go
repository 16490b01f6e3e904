package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
)

// 管理者の操作履歴を見る
type AdminAuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAdminAuditUsecase(auditRepo repo.AuditLogRepository) *AdminAuditUsecase {
	return &AdminAuditUsecase{auditRepo: auditRepo}
}

// 空文字は条件なし
type AuditListInput struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (u *AdminAuditUsecase) List(ctx context.Context, in AuditListInput) ([]model.AuditLog, error) {
	if in.Limit < 0 || in.Offset < 0 {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidBody)
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidBody)
	}

	f := repo.AuditLogFilter{
		CreatedFrom: in.From,
		CreatedTo:   in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if v := strings.TrimSpace(in.ActorUserID); v != "" {
		f.ActorUserID = &v
	}
	if v := strings.TrimSpace(in.Action); v != "" {
		a := model.AuditAction(strings.ToUpper(v))
		f.Action = &a
	}
	if v := strings.TrimSpace(in.ResourceType); v != "" {
		rt := model.AuditResourceType(strings.ToLower(v))
		f.ResourceType = &rt
	}
	if v := strings.TrimSpace(in.ResourceID); v != "" {
		f.ResourceID = &v
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		slog.ErrorContext(ctx, "list audit logs", "err", err)
		return []model.AuditLog{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return logs, nil
}
