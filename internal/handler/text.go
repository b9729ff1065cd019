package handler

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/internal/response"
	"github.com/kyiku/jatext/kana"
)

// TextHandler serves the synchronous normalization endpoints.
type TextHandler struct {
	presets   *pipeline.Presets
	maxLength int
}

// NewTextHandler creates a new TextHandler. maxLength is in runes; 0 disables the limit.
func NewTextHandler(presets *pipeline.Presets, maxLength int) *TextHandler {
	return &TextHandler{
		presets:   presets,
		maxLength: maxLength,
	}
}

// ConvertRequest represents a normalization request.
// Preset takes priority over Ops; with neither, the standard preset runs.
type ConvertRequest struct {
	Text   string   `json:"text"`
	Ops    []string `json:"ops"`
	Preset string   `json:"preset"`
}

// ClassifyRequest represents a single character classification request.
type ClassifyRequest struct {
	Char string `json:"char"`
}

// CountRequest represents a character count request.
type CountRequest struct {
	Text string `json:"text"`
}

// MatchRequest represents a kana comparison request.
type MatchRequest struct {
	Input  string `json:"input"`
	Answer string `json:"answer"`
}

// Convert applies a pipeline to the request text.
func (h *TextHandler) Convert(c echo.Context) error {
	var req ConvertRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "リクエストの解析に失敗しました")
	}

	if err := pipeline.CheckLength(req.Text, h.maxLength); err != nil {
		return textTooLong(c)
	}

	p, err := h.presets.Resolve(req.Preset, req.Ops)
	if err != nil {
		return pipelineError(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"result": p.Apply(req.Text),
		"ops":    p.Names(),
	})
}

// Classify reports which script ranges a single character belongs to.
func (h *TextHandler) Classify(c echo.Context) error {
	var req ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "リクエストの解析に失敗しました")
	}

	if utf8.RuneCountInString(req.Char) != 1 {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "char は1文字で指定してください")
	}

	r, _ := utf8.DecodeRuneInString(req.Char)
	return response.Success(c, map[string]interface{}{
		"char":                req.Char,
		"hiragana":            kana.IsHiragana(r),
		"katakana":            kana.IsKatakana(r),
		"half_width_katakana": kana.IsHalfWidthKatakana(r),
		"kanji":               kana.IsKanji(r),
		"full_width":          kana.IsFullWidth(r),
		"kana":                kana.IsKana(r),
	})
}

// Count tallies the characters of the request text by script.
func (h *TextHandler) Count(c echo.Context) error {
	var req CountRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "リクエストの解析に失敗しました")
	}

	if err := pipeline.CheckLength(req.Text, h.maxLength); err != nil {
		return textTooLong(c)
	}

	return response.Success(c, map[string]interface{}{
		"counts": kana.CountCharacterTypes(req.Text),
	})
}

// Match compares two strings ignoring kana script and half-width katakana.
func (h *TextHandler) Match(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "リクエストの解析に失敗しました")
	}

	if err := pipeline.CheckLength(req.Input+req.Answer, h.maxLength); err != nil {
		return textTooLong(c)
	}

	return response.Success(c, map[string]interface{}{
		"match":             kana.KanaMatch(req.Input, req.Answer),
		"normalized_input":  kana.NormalizeForComparison(req.Input),
		"normalized_answer": kana.NormalizeForComparison(req.Answer),
	})
}

// Presets lists the registered presets and every known operation.
func (h *TextHandler) Presets(c echo.Context) error {
	presets := make(map[string][]string)
	for _, name := range h.presets.Names() {
		p, err := h.presets.Get(name)
		if err != nil {
			continue
		}
		presets[name] = p.Names()
	}

	return response.Success(c, map[string]interface{}{
		"presets":    presets,
		"operations": pipeline.Operations(),
	})
}

func textTooLong(c echo.Context) error {
	return response.ErrorWithCode(c, http.StatusRequestEntityTooLarge, response.CodeTextTooLong, "テキストが長すぎます")
}

// pipelineError maps pipeline construction errors to responses.
func pipelineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrUnknownPreset):
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeUnknownPreset, err.Error())
	case errors.Is(err, pipeline.ErrUnknownOperation), errors.Is(err, pipeline.ErrEmptyPipeline):
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeUnknownOperation, err.Error())
	default:
		return response.ErrorWithCode(c, http.StatusInternalServerError, response.CodeInternalError, "サーバーエラーが発生しました")
	}
}
