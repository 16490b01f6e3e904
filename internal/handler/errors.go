package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// writeError はメッセージキーをリクエストの言語に直して返す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	lang := middleware.LangFrom(c)
	if he, ok := usecase.AsHTTPError(err); ok {
		res := ErrorResponse{Error: i18n.Message(lang, he.Key)}
		if len(he.Fields) > 0 {
			res.Fields = he.Fields.Localize(lang)
		}
		return c.JSON(he.Status, res)
	}

	//500
	slog.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: i18n.Message(lang, i18n.MsgInternal)})
}

func badRequest(c echo.Context, key string) error {
	return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, key))
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	return middleware.UserIDFrom(c)
}
