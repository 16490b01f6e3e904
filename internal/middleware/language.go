package middleware

import (
	"storefront/internal/i18n"

	"github.com/labstack/echo/v4"
)

const CtxLangKey = "lang" // i18n.Lang

// Language はリクエストの表示言語を決めて context に入れる。
// ?lang= で指定されたときはCookieにも保存する。
func Language() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang, persist := i18n.Negotiate(c.Request())
			if persist {
				i18n.SetLangCookie(c.Response(), lang)
			}
			c.Set(CtxLangKey, lang)
			c.Response().Header().Set("Content-Language", string(lang))
			return next(c)
		}
	}
}

// LangFrom は context の言語。未設定ならリクエストから決める。
func LangFrom(c echo.Context) i18n.Lang {
	if l, ok := c.Get(CtxLangKey).(i18n.Lang); ok && l != "" {
		return l
	}
	l, _ := i18n.Negotiate(c.Request())
	return l
}
