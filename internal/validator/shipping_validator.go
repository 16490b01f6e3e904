package validator

import (
	"strings"

	"storefront/internal/i18n"
)

// Shipping はチェックアウトの配送先フォーム
type Shipping struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Notes     string `json:"notes"`
}

// Trim は前後の空白を落としたコピー
func (s Shipping) Trim() Shipping {
	return Shipping{
		FirstName: strings.TrimSpace(s.FirstName),
		LastName:  strings.TrimSpace(s.LastName),
		Email:     strings.TrimSpace(s.Email),
		Phone:     strings.TrimSpace(s.Phone),
		Address:   strings.TrimSpace(s.Address),
		City:      strings.TrimSpace(s.City),
		Country:   strings.TrimSpace(s.Country),
		Notes:     strings.TrimSpace(s.Notes),
	}
}

// ValidateShipping は notes 以外を必須にし、メール/電話の形式を確認する
func ValidateShipping(s Shipping) FieldErrors {
	s = s.Trim()
	errs := FieldErrors{}

	required := []struct {
		field string
		value string
	}{
		{"firstName", s.FirstName},
		{"lastName", s.LastName},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"country", s.Country},
	}
	for _, r := range required {
		if r.value == "" {
			errs.add(r.field, i18n.MsgFieldRequired)
		}
	}

	if s.Email != "" && !IsEmailLike(s.Email) {
		errs.add("email", i18n.MsgInvalidEmail)
	}
	if s.Phone != "" && !IsPhoneLike(s.Phone) {
		errs.add("phone", i18n.MsgInvalidPhone)
	}
	return errs
}
