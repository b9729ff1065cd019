package kana

import (
	"strings"
	"unicode"
)

// hiraganaStart is the first hiragana letter (ぁ).
const hiraganaStart = 0x3041

// hiraganaEnd is the last hiragana letter (ゖ).
const hiraganaEnd = 0x3096

// katakanaStart is the first katakana letter (ァ).
const katakanaStart = 0x30A1

// katakanaEnd is the last katakana letter (ヺ).
const katakanaEnd = 0x30FA

const (
	halfWidthKatakanaStart = 0xFF61
	halfWidthKatakanaEnd   = 0xFF9F
)

const (
	kanjiStart = 0x4E00
	kanjiEnd   = 0x9FFF
)

const (
	fullWidthStart = 0xFF01
	fullWidthEnd   = 0xFF5E
)

// ideographicSpace is the full-width space (U+3000).
const ideographicSpace = '　'

// IsHiragana checks if a rune is a hiragana letter.
func IsHiragana(r rune) bool {
	return r >= hiraganaStart && r <= hiraganaEnd
}

// IsKatakana checks if a rune is a full-width katakana letter.
// Half-width katakana is not included.
func IsKatakana(r rune) bool {
	return r >= katakanaStart && r <= katakanaEnd
}

// IsHalfWidthKatakana checks if a rune is in the half-width katakana block,
// including the half-width punctuation and sound marks.
func IsHalfWidthKatakana(r rune) bool {
	return r >= halfWidthKatakanaStart && r <= halfWidthKatakanaEnd
}

// IsKanji checks if a rune is a CJK unified ideograph.
func IsKanji(r rune) bool {
	return r >= kanjiStart && r <= kanjiEnd
}

// IsFullWidth checks if a rune is a full-width ASCII form or the
// ideographic space.
func IsFullWidth(r rune) bool {
	return r >= fullWidthStart && r <= fullWidthEnd || r == ideographicSpace
}

// IsKana checks if a rune is either hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// ContainsOnlyKana checks if a string contains only kana characters.
// Whitespace is ignored.
func ContainsOnlyKana(s string) bool {
	for _, r := range s {
		if !IsKana(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// mapRunes applies fn to every rune of s.
func mapRunes(s string, fn func(rune) rune) string {
	if s == "" {
		return ""
	}
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		result.WriteRune(fn(r))
	}
	return result.String()
}
