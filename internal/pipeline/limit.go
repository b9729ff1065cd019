package pipeline

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrTextTooLong is returned when an input exceeds the configured rune limit.
var ErrTextTooLong = errors.New("text too long")

// CheckLength returns ErrTextTooLong when s has more than limit runes.
// A limit of 0 or less disables the check.
func CheckLength(s string, limit int) error {
	if limit <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(s); n > limit {
		return fmt.Errorf("%w: %d > %d", ErrTextTooLong, n, limit)
	}
	return nil
}
