package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name              string
		r                 rune
		wantHiragana      bool
		wantKatakana      bool
		wantHalfWidthKana bool
		wantKanji         bool
		wantFullWidth     bool
	}{
		{name: "ひらがな", r: 'あ', wantHiragana: true},
		{name: "ひらがな先頭", r: 'ぁ', wantHiragana: true},
		{name: "ひらがな末尾", r: 'ゖ', wantHiragana: true},
		{name: "ひらがな範囲外（直前）", r: '\u3040'},
		{name: "ひらがな範囲外（直後）", r: '\u3097'},
		{name: "カタカナ", r: 'ア', wantKatakana: true},
		{name: "カタカナ先頭", r: 'ァ', wantKatakana: true},
		{name: "カタカナ末尾", r: 'ヺ', wantKatakana: true},
		{name: "長音記号はカタカナではない", r: 'ー'},
		{name: "カタカナ範囲外（直前）", r: '\u30A0'},
		{name: "半角カタカナ", r: 'ｱ', wantHalfWidthKana: true},
		{name: "半角句点", r: '｡', wantHalfWidthKana: true},
		{name: "半角半濁点", r: 'ﾟ', wantHalfWidthKana: true},
		{name: "半角範囲外（直後）", r: '\uFFA0'},
		{name: "漢字", r: '漢', wantKanji: true},
		{name: "漢字先頭", r: '一', wantKanji: true},
		{name: "漢字末尾", r: '\u9FFF', wantKanji: true},
		{name: "漢字範囲外（直前）", r: '\u4DFF'},
		{name: "全角英字", r: 'Ａ', wantFullWidth: true},
		{name: "全角数字", r: '１', wantFullWidth: true},
		{name: "全角感嘆符", r: '！', wantFullWidth: true},
		{name: "全角チルダ", r: '～', wantFullWidth: true},
		{name: "全角スペース", r: '　', wantFullWidth: true},
		{name: "全角範囲外（直後）", r: '\uFF5F'},
		{name: "半角英字", r: 'A'},
		{name: "半角スペース", r: ' '},
		{name: "絵文字", r: '😀'},
		{name: "ハングル", r: '한'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHiragana, IsHiragana(tt.r), "IsHiragana")
			assert.Equal(t, tt.wantKatakana, IsKatakana(tt.r), "IsKatakana")
			assert.Equal(t, tt.wantHalfWidthKana, IsHalfWidthKatakana(tt.r), "IsHalfWidthKatakana")
			assert.Equal(t, tt.wantKanji, IsKanji(tt.r), "IsKanji")
			assert.Equal(t, tt.wantFullWidth, IsFullWidth(tt.r), "IsFullWidth")
		})
	}
}

func TestIsKana(t *testing.T) {
	assert.True(t, IsKana('あ'))
	assert.True(t, IsKana('ア'))
	assert.False(t, IsKana('ｱ'))
	assert.False(t, IsKana('漢'))
	assert.False(t, IsKana('A'))
}

func TestContainsOnlyKana(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "ひらがなのみ", input: "おにかます", want: true},
		{name: "カタカナのみ", input: "オニカマス", want: true},
		{name: "空白を含む", input: "おに かます", want: true},
		{name: "全角空白を含む", input: "おに　かます", want: true},
		{name: "漢字を含む", input: "お魚", want: false},
		{name: "英字を含む", input: "さばA", want: false},
		{name: "空文字列", input: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsOnlyKana(tt.input))
		})
	}
}
