package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/i18n"
	"storefront/internal/validator"
)

// HTTPError はハンドラでそのままレスポンスにできるエラー。
// Key は i18n のメッセージキーで、言語はハンドラ側で決める。
type HTTPError struct {
	Status int
	Key    string
	Fields validator.FieldErrors
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Key)
}

func NewHTTPError(status int, key string) error {
	return &HTTPError{
		Status: status,
		Key:    key,
	}
}

// 入力チェックのエラー（400 + フィールド別）
func NewValidationError(fields validator.FieldErrors) error {
	return &HTTPError{
		Status: http.StatusBadRequest,
		Key:    i18n.MsgValidation,
		Fields: fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errDB() error {
	return NewHTTPError(http.StatusInternalServerError, i18n.MsgDBError)
}
