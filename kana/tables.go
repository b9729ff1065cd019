package kana

// halfWidthKatakanaTable holds the full-width form of every rune in
// U+FF61-U+FF9F, indexed by r - halfWidthKatakanaStart.
var halfWidthKatakanaTable = []rune(
	"。「」、・ヲァィゥェォャュョッー" +
		"アイウエオカキクケコサシスセソタチツテト" +
		"ナニヌネノハヒフヘホマミムメモヤユヨ" +
		"ラリルレロワン゛゜",
)

// Half-width sound marks.
const (
	halfWidthDakuten    = 'ﾞ'
	halfWidthHandakuten = 'ﾟ'
)

// voiced maps a kana to the same kana with dakuten.
var voiced = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
	'う': 'ゔ',

	'カ': 'ガ', 'キ': 'ギ', 'ク': 'グ', 'ケ': 'ゲ', 'コ': 'ゴ',
	'サ': 'ザ', 'シ': 'ジ', 'ス': 'ズ', 'セ': 'ゼ', 'ソ': 'ゾ',
	'タ': 'ダ', 'チ': 'ヂ', 'ツ': 'ヅ', 'テ': 'デ', 'ト': 'ド',
	'ハ': 'バ', 'ヒ': 'ビ', 'フ': 'ブ', 'ヘ': 'ベ', 'ホ': 'ボ',
	'ウ': 'ヴ', 'ワ': 'ヷ', 'ヲ': 'ヺ',
}

// semiVoiced maps a kana to the same kana with handakuten.
var semiVoiced = map[rune]rune{
	'は': 'ぱ', 'ひ': 'ぴ', 'ふ': 'ぷ', 'へ': 'ぺ', 'ほ': 'ぽ',
	'ハ': 'パ', 'ヒ': 'ピ', 'フ': 'プ', 'ヘ': 'ペ', 'ホ': 'ポ',
}

// Voiced returns r with dakuten, if such a character exists.
func Voiced(r rune) (rune, bool) {
	v, ok := voiced[r]
	return v, ok
}

// SemiVoiced returns r with handakuten, if such a character exists.
func SemiVoiced(r rune) (rune, bool) {
	v, ok := semiVoiced[r]
	return v, ok
}
