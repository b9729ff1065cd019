package kana

// kanaOffset is the offset between hiragana and katakana.
const kanaOffset = katakanaStart - hiraganaStart

// convertibleKatakanaEnd is the last katakana letter with a hiragana twin (ヶ).
const convertibleKatakanaEnd = hiraganaEnd + kanaOffset

// ToHiragana converts katakana (U+30A1-U+30F6) to hiragana.
// Katakana without a hiragana twin, such as ー and ヷ, is kept.
func ToHiragana(s string) string {
	return mapRunes(s, func(r rune) rune {
		if r >= katakanaStart && r <= convertibleKatakanaEnd {
			return r - kanaOffset
		}
		return r
	})
}

// ToKatakana converts hiragana (U+3041-U+3096) to katakana.
func ToKatakana(s string) string {
	return mapRunes(s, func(r rune) rune {
		if IsHiragana(r) {
			return r + kanaOffset
		}
		return r
	})
}
