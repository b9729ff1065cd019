// Package pipeline composes text operations into an ordered chain.
package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kyiku/jatext/internal/transliterate"
	"github.com/kyiku/jatext/kana"
)

// Sentinel errors returned while building a pipeline.
var (
	// ErrUnknownOperation indicates an operation name is not registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrEmptyPipeline indicates no operation was given.
	ErrEmptyPipeline = errors.New("pipeline has no operations")
)

// Operation names.
const (
	OpHalfWidth         = "half_width"
	OpFullWidth         = "full_width"
	OpHiragana          = "hiragana"
	OpKatakana          = "katakana"
	OpHalfWidthKatakana = "half_width_katakana"
	OpWhitespace        = "whitespace"
	OpProlongedSound    = "prolonged_sound"
	OpIterationMarks    = "iteration_marks"
	OpNFKC              = "nfkc"
	OpRomaji            = "romaji"
)

var operations = map[string]func(string) string{
	OpHalfWidth:         kana.ToHalfWidth,
	OpFullWidth:         kana.ToFullWidth,
	OpHiragana:          kana.ToHiragana,
	OpKatakana:          kana.ToKatakana,
	OpHalfWidthKatakana: kana.HalfWidthKatakanaToFullWidth,
	OpWhitespace:        kana.NormalizeWhitespace,
	OpProlongedSound:    kana.NormalizeProlongedSound,
	OpIterationMarks:    kana.ExpandIterationMarks,
	OpNFKC:              transliterate.NFKC,
	OpRomaji:            transliterate.Romanize,
}

// Standard is the default normalization order. Prolonged sound marks are
// normalized before half_width so that ～ becomes ー rather than ~.
var Standard = []string{
	OpHalfWidthKatakana,
	OpProlongedSound,
	OpIterationMarks,
	OpHalfWidth,
	OpWhitespace,
}

// Operations returns the registered operation names in sorted order.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline is an ordered list of operations. The zero value applies no
// operation. A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	names []string
	steps []func(string) string
}

// Parse builds a Pipeline from operation names, applied in the given order.
func Parse(names []string) (Pipeline, error) {
	if len(names) == 0 {
		return Pipeline{}, ErrEmptyPipeline
	}

	p := Pipeline{
		names: make([]string, 0, len(names)),
		steps: make([]func(string) string, 0, len(names)),
	}
	for _, name := range names {
		fn, ok := operations[name]
		if !ok {
			return Pipeline{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
		}
		p.names = append(p.names, name)
		p.steps = append(p.steps, fn)
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(names []string) Pipeline {
	p, err := Parse(names)
	if err != nil {
		panic(err)
	}
	return p
}

// Apply runs every operation over s in order.
func (p Pipeline) Apply(s string) string {
	for _, step := range p.steps {
		s = step(s)
	}
	return s
}

// Names returns the operation names of the pipeline.
func (p Pipeline) Names() []string {
	return append([]string(nil), p.names...)
}
