package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyiku/jatext/internal/pipeline"
)

func decodeLines(t *testing.T, out string) []result {
	t.Helper()
	var results []result
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var r result
		require.NoError(t, dec.Decode(&r))
		results = append(results, r)
	}
	return results
}

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		stdin       string
		wantResults []string
		wantErr     error
	}{
		{
			name:        "正常系: 引数を標準プリセットで変換",
			args:        []string{"ｶﾞｯｺｳ　ＡＢＣ"},
			wantResults: []string{"ガッコウ ABC"},
		},
		{
			name:        "正常系: 操作を指定",
			args:        []string{"-ops", "hiragana, half_width", "カタカナ１２３"},
			wantResults: []string{"かたかな123"},
		},
		{
			name:        "正常系: プリセットを指定",
			args:        []string{"-preset", "search", "ひらがな"},
			wantResults: []string{"ヒラガナ"},
		},
		{
			name:        "正常系: 標準入力を1行ずつ処理",
			stdin:       "ﾃｽﾄ\nＴＥＳＴ\n",
			wantResults: []string{"テスト", "TEST"},
		},
		{
			name:    "異常系: 未知の操作",
			args:    []string{"-ops", "rot13", "a"},
			wantErr: pipeline.ErrUnknownOperation,
		},
		{
			name:    "異常系: 未知のプリセット",
			args:    []string{"-preset", "nope", "a"},
			wantErr: pipeline.ErrUnknownPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			results := decodeLines(t, stdout.String())
			require.Len(t, results, len(tt.wantResults))
			for i, want := range tt.wantResults {
				assert.Equal(t, want, results[i].Result)
			}
		})
	}
}

func TestRun_CountAndClassify(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{"-count", "-classify", "あア"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	results := decodeLines(t, stdout.String())
	require.Len(t, results, 1)

	require.NotNil(t, results[0].Counts)
	assert.Equal(t, 1, results[0].Counts.Hiragana)
	assert.Equal(t, 1, results[0].Counts.Katakana)
	assert.Equal(t, 2, results[0].Counts.Total)

	require.Len(t, results[0].Classify, 2)
	assert.True(t, results[0].Classify[0].Hiragana)
	assert.True(t, results[0].Classify[1].Katakana)
}

func TestRun_PresetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  kana_only:\n    - half_width_katakana\n    - hiragana\n"), 0o600))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-presets-file", path, "-preset", "kana_only", "ｶﾀｶﾅ"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	results := decodeLines(t, stdout.String())
	require.Len(t, results, 1)
	assert.Equal(t, "かたかな", results[0].Result)
	assert.Equal(t, []string{"half_width_katakana", "hiragana"}, results[0].Ops)
}

func TestSplitOps(t *testing.T) {
	assert.Nil(t, splitOps(""))
	assert.Nil(t, splitOps("  "))
	assert.Equal(t, []string{"a", "b"}, splitOps("a, b,,"))
}
