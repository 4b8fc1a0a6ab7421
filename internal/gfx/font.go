package gfx

// Glyph locates one character inside Font.Bitmap. XOffset and YOffset are
// relative to the cursor, which sits on the baseline for custom fonts.
type Glyph struct {
	BitmapOffset int
	Width        uint8
	Height       uint8
	XAdvance     uint8
	XOffset      int8
	YOffset      int8
}

// Font is a variable-metric 1-bit font. Glyphs[i] describes code First+i.
// Bitmap is packed row-major, most significant bit first, with each glyph
// starting on a byte boundary.
type Font struct {
	First, Last byte
	Glyphs      []Glyph
	Bitmap      []byte
	YAdvance    uint8
}

// Glyph returns the metrics for code, if the font covers it.
func (f *Font) Glyph(code byte) (Glyph, bool) {
	if code < f.First || code > f.Last {
		return Glyph{}, false
	}
	i := int(code - f.First)
	if i >= len(f.Glyphs) {
		return Glyph{}, false
	}
	return f.Glyphs[i], true
}

// bitReader walks a packed bitmap one bit at a time, MSB first.
type bitReader struct {
	data []byte
	pos  int
	bit  int
	cur  byte
}

func newBitReader(data []byte, offset int) *bitReader {
	return &bitReader{data: data, pos: offset}
}

func (br *bitReader) next() bool {
	if br.bit == 0 {
		br.cur = 0
		if br.pos >= 0 && br.pos < len(br.data) {
			br.cur = br.data[br.pos]
		}
		br.pos++
	}
	set := br.cur&0x80 != 0
	br.cur <<= 1
	br.bit = (br.bit + 1) & 7
	return set
}

// DrawChar draws code c at (x, y) with the active font. For the classic
// font (x, y) is the top-left corner; for custom fonts it is the baseline
// origin.
func (ctx *Context) DrawChar(x, y int, c byte, fg, bg Color, sizeX, sizeY int) {
	if sizeX < 1 {
		sizeX = 1
	}
	if sizeY < 1 {
		sizeY = 1
	}
	if ctx.font == nil {
		ctx.drawClassicChar(x, y, c, fg, bg, sizeX, sizeY)
		return
	}
	ctx.drawGlyphChar(x, y, c, fg, sizeX, sizeY)
}

// fontPixel draws one font pixel, either directly or scaled up.
func (ctx *Context) fontPixel(x, y, col, row, sizeX, sizeY int, c Color) {
	if sizeX == 1 && sizeY == 1 {
		ctx.SetPixel(x+col, y+row, c)
		return
	}
	ctx.FillRect(x+col*sizeX, y+row*sizeY, sizeX, sizeY, c)
}

func (ctx *Context) drawClassicChar(x, y int, c byte, fg, bg Color, sizeX, sizeY int) {
	if x >= ctx.Width() || y >= ctx.Height() || x+6*sizeX-1 < 0 || y+8*sizeY-1 < 0 {
		return
	}

	mark := DiacriticNone
	if c >= RegistrySize {
		c, mark = ctx.resolveExtended(c)
	}
	if c >= 176 {
		// The table carries the 176 entry older charsets skipped.
		c++
	}

	opaque := !bg.Equal(fg)
	base := int(c) * 5
	for i := 0; i < 5; i++ {
		line := classicFont[base+i]
		for j := 0; j < 8; j, line = j+1, line>>1 {
			if line&1 != 0 {
				ctx.fontPixel(x, y, i, j, sizeX, sizeY, fg)
			} else if opaque {
				ctx.fontPixel(x, y, i, j, sizeX, sizeY, bg)
			}
		}
	}
	ctx.drawDiacritic(x, y, c, mark, fg, bg, sizeX, sizeY)

	if opaque {
		if sizeX == 1 && sizeY == 1 {
			ctx.FastVLine(x+5, y, 8, bg)
		} else {
			ctx.FillRect(x+5*sizeX, y, sizeX, 8*sizeY, bg)
		}
	}
}

// resolveExtended turns an extended byte code into the table code and
// accent to draw. Accented letters win over the table's own code page 437
// glyphs.
func (ctx *Context) resolveExtended(c byte) (byte, Diacritic) {
	r, ok := ctx.registry.Lookup(c)
	if !ok {
		return FallbackCode, DiacriticNone
	}
	if base, mark, ok := ResolveDiacritic(r); ok {
		return base, mark
	}
	if code, ok := classicCode(r); ok {
		return code, DiacriticNone
	}
	return FallbackCode, DiacriticNone
}

func (ctx *Context) drawGlyphChar(x, y int, c byte, fg Color, sizeX, sizeY int) {
	g, ok := ctx.font.Glyph(c)
	if !ok || g.Width == 0 || g.Height == 0 {
		return
	}

	xo, yo := int(g.XOffset), int(g.YOffset)
	br := newBitReader(ctx.font.Bitmap, g.BitmapOffset)
	for yy := 0; yy < int(g.Height); yy++ {
		for xx := 0; xx < int(g.Width); xx++ {
			if br.next() {
				ctx.fontPixel(x, y, xo+xx, yo+yy, sizeX, sizeY, fg)
			}
		}
	}
}
