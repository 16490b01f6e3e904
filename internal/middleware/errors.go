package middleware

import (
	"storefront/internal/i18n"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// 言語に合わせたエラーを返す
func deny(c echo.Context, status int, key string) error {
	return c.JSON(status, errorResponse{Error: i18n.Message(LangFrom(c), key)})
}
