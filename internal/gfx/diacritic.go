package gfx

import (
	"golang.org/x/text/unicode/norm"
)

// Diacritic is the accent composited over a classic glyph.
type Diacritic int

const (
	DiacriticNone Diacritic = iota
	DiacriticAcute
	DiacriticCaron
	DiacriticDot
)

func (d Diacritic) String() string {
	switch d {
	case DiacriticAcute:
		return "acute"
	case DiacriticCaron:
		return "caron"
	case DiacriticDot:
		return "dot"
	default:
		return "none"
	}
}

type accented struct {
	base byte
	mark Diacritic
}

// diacriticTable lists the letters the overlay was drawn for. Ů/ů use the
// dot layout, which reads as a ring at this size.
var diacriticTable = map[rune]accented{
	'Á': {'A', DiacriticAcute},
	'É': {'E', DiacriticAcute},
	'Í': {'I', DiacriticAcute},
	'Ó': {'O', DiacriticAcute},
	'Ú': {'U', DiacriticAcute},
	'Ý': {'Y', DiacriticAcute},
	'Ů': {'U', DiacriticDot},
	'Č': {'C', DiacriticCaron},
	'Ď': {'D', DiacriticCaron},
	'Ě': {'E', DiacriticCaron},
	'Ň': {'N', DiacriticCaron},
	'Ř': {'R', DiacriticCaron},
	'Š': {'S', DiacriticCaron},
	'Ť': {'T', DiacriticCaron},
	'Ž': {'Z', DiacriticCaron},
	'á': {'a', DiacriticAcute},
	'é': {'e', DiacriticAcute},
	'í': {'i', DiacriticAcute},
	'ó': {'o', DiacriticAcute},
	'ú': {'u', DiacriticAcute},
	'ý': {'y', DiacriticAcute},
	'ů': {'u', DiacriticDot},
	'č': {'c', DiacriticCaron},
	'ď': {'d', DiacriticCaron},
	'ě': {'e', DiacriticCaron},
	'ň': {'n', DiacriticCaron},
	'ř': {'r', DiacriticCaron},
	'š': {'s', DiacriticCaron},
	'ť': {'t', DiacriticCaron},
	'ž': {'z', DiacriticCaron},
}

var combiningMarks = map[rune]Diacritic{
	'\u0301': DiacriticAcute,
	'\u030C': DiacriticCaron,
	'\u030A': DiacriticDot,
	'\u0307': DiacriticDot,
}

// ResolveDiacritic splits r into an ASCII base letter and the accent to
// overlay. ASCII resolves to itself. Letters outside the table are
// decomposed (NFD); ok is false when no ASCII base can be found.
func ResolveDiacritic(r rune) (base byte, d Diacritic, ok bool) {
	if r >= 0 && r < 0x80 {
		return byte(r), DiacriticNone, true
	}
	if a, found := diacriticTable[r]; found {
		return a.base, a.mark, true
	}

	decomposed := []rune(norm.NFD.String(string(r)))
	if len(decomposed) == 2 && decomposed[0] < 0x80 {
		if mark, found := combiningMarks[decomposed[1]]; found {
			return byte(decomposed[0]), mark, true
		}
	}
	return FallbackCode, DiacriticNone, false
}

type block struct{ dx, dy int }

// Block layouts in half-scale units relative to the glyph origin, as drawn
// at text size 2. Order matters where blocks overlap.
var (
	dotBlocks = []block{
		{4, -1}, {5, -1}, {4, -4}, {5, -4},
		{3, -2}, {3, -3}, {6, -2}, {6, -3},
	}
	caronBlocks = []block{
		{4, -2}, {5, -2},
		{3, -3}, {4, -3}, {5, -3}, {6, -3},
		{3, -4}, {2, -4}, {7, -4}, {6, -4},
	}
	caronBlocksT = []block{
		{7, -1}, {7, -2}, {8, -2}, {8, -3},
	}
	acuteClear  = block{4, -3}
	acuteBlocks = []block{
		{4, -2}, {5, -2}, {5, -3}, {6, -3}, {7, -4}, {6, -4},
	}
)

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

// drawDiacritic overlays d on the classic glyph c drawn at (x, y). Only even
// scale factors are supported; anything else is skipped.
func (ctx *Context) drawDiacritic(x, y int, c byte, d Diacritic, fg, bg Color, sizeX, sizeY int) {
	if d == DiacriticNone {
		return
	}
	if sizeX%2 != 0 || sizeY%2 != 0 {
		ctx.logger.Infof("gfx", "%s on %q skipped at odd size %dx%d", d, c, sizeX, sizeY)
		return
	}

	kx := sizeX / 2
	ky := sizeY / 2
	bias := 3 * ky
	if isUpper(c) {
		bias = 0
	}
	paint := func(blocks []block, col Color) {
		for _, b := range blocks {
			ctx.FillRect(x+b.dx*kx, y+b.dy*ky+bias, kx, ky, col)
		}
	}

	switch d {
	case DiacriticDot:
		paint(dotBlocks, fg)
	case DiacriticCaron:
		switch c {
		case 't':
			paint(caronBlocksT, fg)
		case 'd':
			// Not drawn: the stroke would run into the next character cell.
		default:
			paint(caronBlocks, fg)
		}
	case DiacriticAcute:
		// One background block goes down before the stroke.
		paint([]block{acuteClear}, bg)
		paint(acuteBlocks, fg)
	}
}
