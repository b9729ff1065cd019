// Command jatext normalizes Japanese text from arguments or stdin.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/kana"
)

type result struct {
	Input    string               `json:"input"`
	Result   string               `json:"result,omitempty"`
	Ops      []string             `json:"ops,omitempty"`
	Counts   *kana.CharacterTypes `json:"counts,omitempty"`
	Classify []classification     `json:"classify,omitempty"`
}

type classification struct {
	Char              string `json:"char"`
	Hiragana          bool   `json:"hiragana"`
	Katakana          bool   `json:"katakana"`
	HalfWidthKatakana bool   `json:"half_width_katakana"`
	Kanji             bool   `json:"kanji"`
	FullWidth         bool   `json:"full_width"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "jatext: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("jatext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		ops         = fs.String("ops", "", "comma separated operations ("+strings.Join(pipeline.Operations(), ", ")+")")
		preset      = fs.String("preset", "", "preset name (default standard)")
		presetsFile = fs.String("presets-file", "", "YAML file with extra presets")
		count       = fs.Bool("count", false, "print character type counts")
		classify    = fs.Bool("classify", false, "print per-character classification")
		verbose     = fs.Bool("v", false, "debug logging to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zap.NewNop()
	if *verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	var extra map[string][]string
	if *presetsFile != "" {
		loaded, err := pipeline.LoadPresetsFile(*presetsFile)
		if err != nil {
			return err
		}
		extra = loaded
	}
	presets, err := pipeline.NewPresets(extra)
	if err != nil {
		return err
	}

	p, err := presets.Resolve(*preset, splitOps(*ops))
	if err != nil {
		return err
	}
	logger.Debug("pipeline resolved", zap.Strings("ops", p.Names()))

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)

	emit := func(input string) error {
		res := result{
			Input:  input,
			Result: p.Apply(input),
			Ops:    p.Names(),
		}
		if *count {
			counts := kana.CountCharacterTypes(input)
			res.Counts = &counts
		}
		if *classify {
			res.Classify = classifyAll(input)
		}
		return enc.Encode(res)
	}

	if texts := fs.Args(); len(texts) > 0 {
		for _, text := range texts {
			if err := emit(text); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lines := 0
	for scanner.Scan() {
		lines++
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	logger.Debug("stdin done", zap.Int("lines", lines))
	return nil
}

func splitOps(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var ops []string
	for _, op := range strings.Split(s, ",") {
		if op = strings.TrimSpace(op); op != "" {
			ops = append(ops, op)
		}
	}
	return ops
}

func classifyAll(s string) []classification {
	out := make([]classification, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, classification{
			Char:              string(r),
			Hiragana:          kana.IsHiragana(r),
			Katakana:          kana.IsKatakana(r),
			HalfWidthKatakana: kana.IsHalfWidthKatakana(r),
			Kanji:             kana.IsKanji(r),
			FullWidth:         kana.IsFullWidth(r),
		})
	}
	return out
}
