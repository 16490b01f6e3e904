package validator

import (
	"regexp"
	"strings"

	"storefront/internal/i18n"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s+-]+$`)
)

// 最低パスワード長
const MinPasswordLength = 8

// 簡易メール形式をチェック
func IsEmailLike(s string) bool {
	return emailPattern.MatchString(s)
}

// 数字・空白・+・- だけ
func IsPhoneLike(s string) bool {
	return phonePattern.MatchString(s)
}

// サインアップの入力を検証
func ValidateRegister(email, password string) FieldErrors {
	errs := FieldErrors{}
	email = strings.TrimSpace(email)

	if email == "" {
		errs.add("email", i18n.MsgFieldRequired)
	} else if !IsEmailLike(email) {
		errs.add("email", i18n.MsgInvalidEmail)
	}

	if password == "" {
		errs.add("password", i18n.MsgFieldRequired)
	} else if len(password) < MinPasswordLength {
		errs.add("password", i18n.MsgWeakPassword)
	}
	return errs
}

// ログインの入力を検証
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	email = strings.TrimSpace(email)

	if email == "" {
		errs.add("email", i18n.MsgFieldRequired)
	} else if !IsEmailLike(email) {
		errs.add("email", i18n.MsgInvalidEmail)
	}
	if password == "" {
		errs.add("password", i18n.MsgFieldRequired)
	}
	return errs
}
