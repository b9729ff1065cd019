package kana

import "unicode"

// CharacterTypes holds per-script character counts for a string.
// Every character is counted in exactly one category, checked in field
// order: hiragana, katakana, half-width katakana, kanji, full-width,
// ASCII, then other.
type CharacterTypes struct {
	Hiragana          int `json:"hiragana"`
	Katakana          int `json:"katakana"`
	HalfWidthKatakana int `json:"half_width_katakana"`
	Kanji             int `json:"kanji"`
	FullWidth         int `json:"full_width"`
	ASCII             int `json:"ascii"`
	Other             int `json:"other"`
	Total             int `json:"total"`
}

// CountCharacterTypes counts the characters of s by script.
func CountCharacterTypes(s string) CharacterTypes {
	var counts CharacterTypes
	for _, r := range s {
		counts.Total++
		switch {
		case IsHiragana(r):
			counts.Hiragana++
		case IsKatakana(r):
			counts.Katakana++
		case IsHalfWidthKatakana(r):
			counts.HalfWidthKatakana++
		case IsKanji(r):
			counts.Kanji++
		case IsFullWidth(r):
			counts.FullWidth++
		case r <= unicode.MaxASCII:
			counts.ASCII++
		default:
			counts.Other++
		}
	}
	return counts
}
