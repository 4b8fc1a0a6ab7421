package gfx

import "fmt"

// baselineShift is how far the cursor moves when switching between the
// classic font (top-left origin) and a custom font (baseline origin).
const baselineShift = 6

const (
	classicAdvance = 6
	classicLine    = 8
)

func (ctx *Context) SetCursor(x, y int) {
	ctx.cursorX = x
	ctx.cursorY = y
}

func (ctx *Context) Cursor() (x, y int) { return ctx.cursorX, ctx.cursorY }

func (ctx *Context) SetTextColor(c Color) { ctx.fg = c }

// SetTextBack sets the text background. Text is drawn transparently while
// it equals the foreground color.
func (ctx *Context) SetTextBack(c Color) { ctx.bg = c }

func (ctx *Context) TextColors() (fg, bg Color) { return ctx.fg, ctx.bg }

// SetTextSize sets the per-axis text magnification. Values below 1 are
// treated as 1.
func (ctx *Context) SetTextSize(sizeX, sizeY int) {
	if sizeX < 1 {
		sizeX = 1
	}
	if sizeY < 1 {
		sizeY = 1
	}
	ctx.sizeX = sizeX
	ctx.sizeY = sizeY
}

func (ctx *Context) TextSize() (sizeX, sizeY int) { return ctx.sizeX, ctx.sizeY }

func (ctx *Context) SetWrap(wrap bool) { ctx.wrap = wrap }

func (ctx *Context) Wrap() bool { return ctx.wrap }

// SetFont selects a custom font, or the classic font when f is nil. Moving
// between the two shifts the cursor by the baseline offset so text written
// before and after the switch lines up.
func (ctx *Context) SetFont(f *Font) {
	if f != nil {
		if ctx.font == nil {
			ctx.cursorY += baselineShift
		}
	} else if ctx.font != nil {
		ctx.cursorY -= baselineShift
	}
	ctx.font = f
}

func (ctx *Context) Font() *Font { return ctx.font }

// lineHeight is the newline advance for the active font and scale.
func (ctx *Context) lineHeight() int {
	if ctx.font == nil {
		return classicLine * ctx.sizeY
	}
	return int(ctx.font.YAdvance) * ctx.sizeY
}

func (ctx *Context) newline() {
	ctx.cursorX = 0
	ctx.cursorY += ctx.lineHeight()
}

// Write feeds one byte code to the text engine: '\n' starts a new line,
// '\r' is ignored, anything else is drawn at the cursor, wrapping first
// when enabled and the glyph would cross the right edge.
func (ctx *Context) Write(c byte) {
	switch c {
	case '\n':
		ctx.newline()
		return
	case '\r':
		return
	}

	if ctx.font == nil {
		if ctx.wrap && ctx.cursorX+ctx.sizeX*classicAdvance > ctx.Width() {
			ctx.newline()
		}
		ctx.DrawChar(ctx.cursorX, ctx.cursorY, c, ctx.fg, ctx.bg, ctx.sizeX, ctx.sizeY)
		ctx.cursorX += ctx.sizeX * classicAdvance
		return
	}

	g, ok := ctx.font.Glyph(c)
	if !ok {
		return
	}
	if g.Width > 0 && g.Height > 0 {
		if ctx.wrap && ctx.cursorX+ctx.sizeX*(int(g.XOffset)+int(g.Width)) > ctx.Width() {
			ctx.newline()
		}
		ctx.DrawChar(ctx.cursorX, ctx.cursorY, c, ctx.fg, ctx.bg, ctx.sizeX, ctx.sizeY)
	}
	ctx.cursorX += int(g.XAdvance) * ctx.sizeX
}

// Print writes a UTF-8 string. Runes outside ASCII are looked up in the
// extended registry and drawn as '?' when absent.
func (ctx *Context) Print(s string) {
	for _, r := range s {
		ctx.Write(ctx.CharFor(r))
	}
}

func (ctx *Context) Printf(format string, args ...interface{}) {
	ctx.Print(fmt.Sprintf(format, args...))
}

// MeasureText returns the size of the box s would cover when printed at the
// current scale without wrapping.
func (ctx *Context) MeasureText(s string) (width, height int) {
	lineWidth := 0
	lines := 1
	for _, r := range s {
		c := ctx.CharFor(r)
		switch c {
		case '\n':
			lines++
			lineWidth = 0
			continue
		case '\r':
			continue
		}
		if ctx.font == nil {
			lineWidth += classicAdvance * ctx.sizeX
		} else if g, ok := ctx.font.Glyph(c); ok {
			lineWidth += int(g.XAdvance) * ctx.sizeX
		}
		if lineWidth > width {
			width = lineWidth
		}
	}
	return width, lines * ctx.lineHeight()
}
