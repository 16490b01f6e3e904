package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type SettingsRepository interface {
	// 未保存なら ErrNotFound
	Get(ctx context.Context) (model.Settings, error)
	// 全項目を上書き保存（無ければ作成）
	Save(ctx context.Context, s model.Settings) (model.Settings, error)
}
