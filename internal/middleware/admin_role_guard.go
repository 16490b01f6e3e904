package middleware

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"

	"github.com/labstack/echo/v4"
)

// AdminRoleGuard は /admin 配下(商品・カテゴリ・設定・注文・監査ログ)を店舗管理者に限定する。
// AuthJWT と TokenVersionGuard の後に置く前提で、ロールが無ければ 401、顧客なら 403。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}
			if model.Role(role) != model.RoleAdmin {
				// お気に入り用の顧客アカウントでは管理画面に入れない
				return deny(c, http.StatusForbidden, i18n.MsgForbidden)
			}
			return next(c)
		}
	}
}
