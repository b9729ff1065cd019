package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset indicates a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Built-in preset names.
const (
	PresetStandard = "standard"
	PresetSearch   = "search"
)

// Presets is a registry of named pipelines. It is read-only once built.
type Presets struct {
	pipelines map[string]Pipeline
}

// presetFile is the YAML layout of a presets file.
type presetFile struct {
	Presets map[string][]string `yaml:"presets"`
}

// NewPresets creates a registry holding the built-in presets plus extra.
// An extra preset may override a built-in one.
func NewPresets(extra map[string][]string) (*Presets, error) {
	defs := map[string][]string{
		PresetStandard: Standard,
		PresetSearch:   append(append([]string(nil), Standard...), OpKatakana),
	}
	for name, ops := range extra {
		defs[name] = ops
	}

	p := &Presets{pipelines: make(map[string]Pipeline, len(defs))}
	for name, ops := range defs {
		pl, err := Parse(ops)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		p.pipelines[name] = pl
	}
	return p, nil
}

// LoadPresets reads custom presets from YAML:
//
//	presets:
//	  kana_only: [half_width_katakana, hiragana]
func LoadPresets(r io.Reader) (map[string][]string, error) {
	var f presetFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}
	if f.Presets == nil {
		return map[string][]string{}, nil
	}
	return f.Presets, nil
}

// LoadPresetsFile reads custom presets from a YAML file.
func LoadPresetsFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets file: %w", err)
	}
	defer f.Close()

	return LoadPresets(f)
}

// Get returns the pipeline registered under name.
func (p *Presets) Get(name string) (Pipeline, error) {
	pl, ok := p.pipelines[name]
	if !ok {
		return Pipeline{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return pl, nil
}

// Names returns the preset names in sorted order.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.pipelines))
	for name := range p.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the pipeline for a request: a named preset wins over an
// explicit operation list, and the standard preset is used when neither
// is given.
func (p *Presets) Resolve(preset string, ops []string) (Pipeline, error) {
	switch {
	case preset != "":
		return p.Get(preset)
	case len(ops) > 0:
		return Parse(ops)
	default:
		return p.Get(PresetStandard)
	}
}
