package validator

import "storefront/internal/i18n"

// FieldErrors はフィールド名 → メッセージキー
type FieldErrors map[string]string

// OK はエラーが無いか
func (f FieldErrors) OK() bool {
	return len(f) == 0
}

func (f FieldErrors) add(field, key string) {
	if _, exists := f[field]; !exists {
		f[field] = key
	}
}

// Localize はメッセージキーを指定言語の文言にする
func (f FieldErrors) Localize(l i18n.Lang) map[string]string {
	out := make(map[string]string, len(f))
	for field, key := range f {
		out[field] = i18n.Message(l, key)
	}
	return out
}
