package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/i18n"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのtvとDBのtoken_versionが一致するか確認。停止ユーザーも弾く。
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserIDFrom(c)
			if !ok {
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}

			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				if err != nil && !errors.Is(err, repository.ErrNotFound) {
					slog.ErrorContext(c.Request().Context(), "token version lookup", "user_id", userID, "err", err)
				}
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}

			//token_version が一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv || !user.IsActive {
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}

			return next(c)
		}
	}
}
