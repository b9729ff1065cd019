package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKanaMatch(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		answer    string
		wantMatch bool
	}{
		// 基本的な一致
		{name: "カタカナ完全一致", input: "オニカマス", answer: "オニカマス", wantMatch: true},
		{name: "ひらがな完全一致", input: "おにかます", answer: "おにかます", wantMatch: true},

		// ひらがな/カタカナ相互変換
		{name: "ひらがな入力、カタカナ正解", input: "おにかます", answer: "オニカマス", wantMatch: true},
		{name: "半角カタカナ入力", input: "ｵﾆｶﾏｽ", answer: "おにかます", wantMatch: true},
		{name: "半角濁点入力", input: "ﾌｸﾞ", answer: "ふぐ", wantMatch: true},
		{name: "混合入力", input: "おにカマス", answer: "オニかます", wantMatch: true},

		// 不一致
		{name: "異なる文字列", input: "サバ", answer: "オニカマス", wantMatch: false},
		{name: "部分一致", input: "オニカ", answer: "オニカマス", wantMatch: false},

		// エッジケース
		{name: "空文字列入力", input: "", answer: "オニカマス", wantMatch: false},
		{name: "両方空", input: "", answer: "", wantMatch: true},
		{name: "前後の空白", input: " オニカマス　", answer: "オニカマス", wantMatch: true},
		{name: "長音記号", input: "ホーボー", answer: "ホウボウ", wantMatch: false},
		{name: "小文字カナ", input: "ャ", answer: "ヤ", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, KanaMatch(tt.input, tt.answer))
		})
	}
}

func TestNormalizeForComparison(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ひらがな正規化", input: "おにかます", want: "オニカマス"},
		{name: "半角カタカナ正規化", input: "ﾊﾟﾝ", want: "パン"},
		{name: "前後空白除去", input: " オニカマス ", want: "オニカマス"},
		{name: "全角スペース", input: "オニカマス　", want: "オニカマス"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeForComparison(tt.input))
		})
	}
}
