package kana

import (
	"strings"
	"unicode"
)

const prolongedSoundMark = 'ー'

// Iteration marks.
const (
	hiraganaIteration       = 'ゝ'
	hiraganaVoicedIteration = 'ゞ'
	katakanaIteration       = 'ヽ'
	katakanaVoicedIteration = 'ヾ'
)

// isWhitespaceVariant reports whether r is replaced by NormalizeWhitespace.
// Line breaks are not included.
func isWhitespaceVariant(r rune) bool {
	switch r {
	case '\t', '\v', '\f':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// NormalizeWhitespace replaces tabs, the ideographic space and other space
// separators with an ASCII space. Runs are not collapsed: every character
// is replaced on its own.
func NormalizeWhitespace(s string) string {
	return mapRunes(s, func(r rune) rune {
		if isWhitespaceVariant(r) {
			return ' '
		}
		return r
	})
}

// NormalizeProlongedSound replaces the wave dash (〜) and the full-width
// tilde (～) with the prolonged sound mark (ー).
func NormalizeProlongedSound(s string) string {
	return mapRunes(s, func(r rune) rune {
		switch r {
		case '〜', '～':
			return prolongedSoundMark
		}
		return r
	})
}

// ExpandIterationMarks replaces ゝ and ヽ with the preceding character and
// ゞ and ヾ with its voiced form. A voiced mark after a character with no
// voiced form, or any mark at the start of the string, is kept.
func ExpandIterationMarks(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))

	var prev rune
	hasPrev := false
	for _, r := range s {
		out := r
		if hasPrev {
			switch r {
			case hiraganaIteration, katakanaIteration:
				out = prev
			case hiraganaVoicedIteration, katakanaVoicedIteration:
				if v, ok := Voiced(prev); ok {
					out = v
				}
			}
		}
		result.WriteRune(out)
		prev = out
		hasPrev = true
	}

	return result.String()
}
