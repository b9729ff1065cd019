// Package transliterate provides Unicode-table driven conversions that go
// beyond the fixed kana tables.
package transliterate

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// NFKC applies Unicode compatibility composition. Half-width katakana,
// full-width ASCII and the ideographic space are all folded by it.
func NFKC(s string) string {
	if s == "" {
		return ""
	}
	return norm.NFKC.String(s)
}

// Romanize transliterates s to ASCII on a best-effort basis: kana become
// romaji and ideographs become their Mandarin reading. Trailing spaces that
// the transliteration appends are removed.
func Romanize(s string) string {
	if s == "" {
		return ""
	}
	out := unidecode.Unidecode(s)
	if !strings.HasSuffix(s, " ") {
		out = strings.TrimRight(out, " ")
	}
	return out
}
