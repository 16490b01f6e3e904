// Package catalog は商品一覧の絞り込み・検索・並び替えを行う。
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// アラビア文字の表記ゆれをそろえる
var letterReplacer = strings.NewReplacer(
	"ـ", "", // タトウィール
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ٱ", "ا",
	"ى", "ي",
	"ئ", "ي",
	"ة", "ه",
)

// Normalize は検索用に文字列をそろえる。
// 小文字化、発音記号（ハラカート等）の除去、アラビア文字の異体字統一。
func Normalize(s string) string {
	s = letterReplacer.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

// Terms は検索語を空白で分割して正規化する
func Terms(q string) []string {
	fields := strings.Fields(Normalize(q))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
