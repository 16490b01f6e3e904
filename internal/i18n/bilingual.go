package i18n

import "strings"

// Bilingual は英語版とアラビア語版をまとめた値
type Bilingual[T any] struct {
	EN T `json:"en"`
	AR T `json:"ar"`
}

// Text は二言語の文字列（名前・説明など）
type Text = Bilingual[string]

// NewText は Text を作る
func NewText(en, ar string) Text {
	return Text{EN: en, AR: ar}
}

// Resolve は指定言語の値を返す。未知の言語は英語扱い。
func Resolve[T any](v Bilingual[T], l Lang) T {
	if l == AR {
		return v.AR
	}
	return v.EN
}

// ResolveText は Resolve と同じだが、空文字ならもう一方の言語に落とす。
func ResolveText(v Text, l Lang) string {
	s := Resolve(v, l)
	if strings.TrimSpace(s) != "" {
		return s
	}
	if l == AR {
		return v.EN
	}
	return v.AR
}

// TrimText は前後の空白を落とす
func TrimText(v Text) Text {
	return Text{EN: strings.TrimSpace(v.EN), AR: strings.TrimSpace(v.AR)}
}

// IsEmpty は両言語とも空なら true
func IsEmpty(v Text) bool {
	return strings.TrimSpace(v.EN) == "" && strings.TrimSpace(v.AR) == ""
}
