package gfx

import "golang.org/x/text/encoding/charmap"

// classicCode finds r among the non-ASCII glyphs of the classic table, which
// follows code page 437. Codes from 176 on are shifted by one when drawn, so
// the code returned for those is one lower and 176 itself is unreachable.
func classicCode(r rune) (byte, bool) {
	b, ok := charmap.CodePage437.EncodeRune(r)
	if !ok || b < 0x80 || b == 176 {
		return 0, false
	}
	if b > 176 {
		b--
	}
	return b, true
}
