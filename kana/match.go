package kana

import "strings"

// NormalizeForComparison normalizes a string for comparison.
// It trims whitespace, widens half-width katakana and converts hiragana to
// katakana.
func NormalizeForComparison(s string) string {
	// Trim whitespace (including full-width space)
	s = strings.TrimSpace(s)
	s = strings.Trim(s, string(ideographicSpace))

	s = HalfWidthKatakanaToFullWidth(s)
	return ToKatakana(s)
}

// KanaMatch checks if two strings match, ignoring hiragana/katakana and
// katakana width differences.
func KanaMatch(input, answer string) bool {
	if input == "" && answer == "" {
		return true
	}

	return NormalizeForComparison(input) == NormalizeForComparison(answer)
}
