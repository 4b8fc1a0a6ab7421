package render

import (
	"image"

	"github.com/rook-computer/tftgfx/internal/gfx"
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how DrawText renders a line. Text is transparent:
// only the glyph pixels are written.
type TextStyle struct {
	Color  gfx.Color
	Size   int // text scale; 0 means 1
	Align  TextAlign
	Shadow bool // draw a black copy one scale step down and right first
}

type TextMetrics struct {
	Width  int
	Height int
}

// MeasureText sizes text at the style's scale with the active font.
func MeasureText(gc *gfx.Context, text string, style TextStyle) TextMetrics {
	size := style.Size
	if size < 1 {
		size = 1
	}
	sx, sy := gc.TextSize()
	gc.SetTextSize(size, size)
	w, h := gc.MeasureText(text)
	gc.SetTextSize(sx, sy)
	return TextMetrics{Width: w, Height: h}
}

// DrawText prints text at line y, aligned horizontally inside area. For the
// classic font y is the top of the line; custom fonts put their baseline
// there.
func DrawText(gc *gfx.Context, text string, area image.Rectangle, y int, style TextStyle) TextMetrics {
	m := MeasureText(gc, text, style)
	x := area.Min.X
	switch style.Align {
	case TextAlignCenter:
		x += (area.Dx() - m.Width) / 2
	case TextAlignRight:
		x = area.Max.X - m.Width
	}

	size := style.Size
	if size < 1 {
		size = 1
	}
	wrap := gc.Wrap()
	gc.SetWrap(false)
	gc.SetTextSize(size, size)
	if style.Shadow {
		gc.SetTextColor(gfx.Black)
		gc.SetTextBack(gfx.Black)
		gc.SetCursor(x+size, y+size)
		gc.Print(text)
	}
	gc.SetTextColor(style.Color)
	gc.SetTextBack(style.Color)
	gc.SetCursor(x, y)
	gc.Print(text)
	gc.SetWrap(wrap)
	return m
}
