package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// UserRepository は店舗管理者と顧客(お気に入り用)のアカウントを扱う。
// 見つからなければ ErrNotFound、メール重複は ErrConflict。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// TokenVersionGuard が毎リクエスト引く
	FindByID(ctx context.Context, userID string) (*model.User, error)
	// ログインと管理者シードで使う。email は小文字化済み
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// last_login_at の記録
	Update(ctx context.Context, user *model.User) error
	// ログアウトで +1 して発行済みトークンを失効させる
	IncrementTokenVersion(ctx context.Context, userID string) error
}
