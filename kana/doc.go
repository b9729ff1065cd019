// Package kana provides character classification and conversion for
// Japanese text.
//
// Every function is a pure transform over runes: no state is kept between
// calls and nothing ever fails. Characters that do not belong to a
// recognised range are passed through unchanged.
//
//	kana.ToHalfWidth("ＡＢＣ１２３")                  // "ABC123"
//	kana.ToHiragana("カタカナ")                       // "かたかな"
//	kana.HalfWidthKatakanaToFullWidth("ｶﾞｷﾞｸﾞ")      // "ガギグ"
//	kana.ExpandIterationMarks("いろゝ")               // "いろろ"
package kana
