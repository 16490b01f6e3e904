package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLang(t *testing.T) {
	cases := map[string]struct {
		want Lang
		ok   bool
	}{
		"en":    {EN, true},
		"ar":    {AR, true},
		"ar-AE": {AR, true},
		"EN-us": {EN, true},
		"fr":    {"", false},
		"":      {"", false},
		"%%":    {"", false},
	}
	for in, tc := range cases {
		got, ok := ParseLang(in)
		assert.Equal(t, tc.ok, ok, in)
		assert.Equal(t, tc.want, got, in)
	}
}

func TestNegotiate_QueryBeatsCookieAndHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/products?lang=ar", nil)
	r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})
	r.Header.Set("Accept-Language", "en-US")

	l, persist := Negotiate(r)
	assert.Equal(t, AR, l)
	assert.True(t, persist)
}

func TestNegotiate_CookieBeatsHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "ar"})
	r.Header.Set("Accept-Language", "en-US")

	l, persist := Negotiate(r)
	assert.Equal(t, AR, l)
	assert.False(t, persist)
}

func TestNegotiate_AcceptLanguage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "ar-SA,ar;q=0.9,en;q=0.5")

	l, _ := Negotiate(r)
	assert.Equal(t, AR, l)
}

func TestNegotiate_Default(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	l, persist := Negotiate(r)
	assert.Equal(t, Default, l)
	assert.False(t, persist)
}

func TestResolveText_FallsBack(t *testing.T) {
	v := NewText("Rose", "")
	assert.Equal(t, "Rose", ResolveText(v, AR))
	assert.Equal(t, "Rose", ResolveText(v, EN))

	v = NewText("", "ورد")
	assert.Equal(t, "ورد", ResolveText(v, EN))
}

func TestResolve_Generic(t *testing.T) {
	v := Bilingual[[]string]{EN: []string{"a"}, AR: []string{"ب"}}
	assert.Equal(t, []string{"ب"}, Resolve(v, AR))
	assert.Equal(t, []string{"a"}, Resolve(v, Lang("xx")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Your cart is empty.", Message(EN, MsgCartEmpty))
	assert.Equal(t, "سلة التسوق فارغة.", Message(AR, MsgCartEmpty))
	assert.Equal(t, "unknown_key", Message(AR, "unknown_key"))
	assert.True(t, HasMessage(MsgNotFound))
}
