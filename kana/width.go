package kana

// widthOffset is the distance between an ASCII character and its
// full-width form.
const widthOffset = 0xFEE0

const (
	asciiPrintableStart = 0x21
	asciiPrintableEnd   = 0x7E
)

// ToHalfWidth converts full-width ASCII forms (U+FF01-U+FF5E) to ASCII.
// The ideographic space is left as is; use NormalizeWhitespace for it.
func ToHalfWidth(s string) string {
	return mapRunes(s, func(r rune) rune {
		if r >= fullWidthStart && r <= fullWidthEnd {
			return r - widthOffset
		}
		return r
	})
}

// ToFullWidth converts printable ASCII (U+0021-U+007E) to full-width forms.
// The ASCII space is left as is.
func ToFullWidth(s string) string {
	return mapRunes(s, func(r rune) rune {
		if r >= asciiPrintableStart && r <= asciiPrintableEnd {
			return r + widthOffset
		}
		return r
	})
}
