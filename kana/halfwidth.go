package kana

import "strings"

// HalfWidthKatakanaToFullWidth converts half-width katakana to full-width
// katakana. A base followed by ﾞ or ﾟ is fused into a single voiced or
// semi-voiced character when one exists; otherwise the mark is converted
// on its own to ゛ or ゜.
func HalfWidthKatakanaToFullWidth(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		if !IsHalfWidthKatakana(r) {
			result.WriteRune(r)
			i++
			continue
		}

		base := halfWidthKatakanaTable[r-halfWidthKatakanaStart]
		if i+1 < len(runes) {
			if fused, ok := fuse(base, runes[i+1]); ok {
				result.WriteRune(fused)
				i += 2
				continue
			}
		}

		result.WriteRune(base)
		i++
	}

	return result.String()
}

// fuse combines a full-width base with a following half-width sound mark.
func fuse(base, mark rune) (rune, bool) {
	switch mark {
	case halfWidthDakuten:
		return Voiced(base)
	case halfWidthHandakuten:
		return SemiVoiced(base)
	}
	return 0, false
}
