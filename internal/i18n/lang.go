// Package i18n は英語/アラビア語の二言語テキストと言語選択を扱う。
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Lang は表示言語
type Lang string

const (
	EN Lang = "en"
	AR Lang = "ar"

	// Default はどこにも指定が無いときの言語
	Default = EN

	// LangParam はクエリで言語を指定するキー
	LangParam = "lang"
	// LangCookieName は言語設定を保存するCookie
	LangCookieName = "lang"
)

var supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(supported)

// ParseLang は "en" / "ar" / "ar-AE" などを Lang に変換する。
func ParseLang(v string) (Lang, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	tag, err := language.Parse(v)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return EN, true
	case "ar":
		return AR, true
	}
	return "", false
}

// IsRTL はアラビア語のとき true
func (l Lang) IsRTL() bool {
	return l == AR
}

// Negotiate はリクエストから言語を決める。
// 優先順位: ?lang= > Cookie > Accept-Language。
// bool は ?lang= 由来（Cookieに保存すべき）かどうか。
func Negotiate(r *http.Request) (Lang, bool) {
	if r == nil {
		return Default, false
	}

	if l, ok := ParseLang(r.URL.Query().Get(LangParam)); ok {
		return l, true
	}

	if c, err := r.Cookie(LangCookieName); err == nil {
		if l, ok := ParseLang(c.Value); ok {
			return l, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				if idx == 1 {
					return AR, false
				}
				return EN, false
			}
		}
	}

	return Default, false
}

// SetLangCookie は言語設定をCookieに保存する。
func SetLangCookie(w http.ResponseWriter, l Lang) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
