package screens

import (
	"context"
	"image"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/render/layout"
	"github.com/rook-computer/tftgfx/internal/state"
)

var palette = []gfx.Color{
	gfx.RGB(0xE6, 0x39, 0x46),
	gfx.RGB(0xF4, 0xA2, 0x61),
	gfx.RGB(0x2A, 0x9D, 0x8F),
	gfx.RGB(0x26, 0x46, 0x53),
	render.Foreground,
}

// ShapesScreen is a gallery of the primitives, one per quadrant. The last
// quadrant is composed in an offscreen framebuffer and flushed at once.
type ShapesScreen struct{}

func (ShapesScreen) Start(ctx context.Context) error { return nil }
func (ShapesScreen) Stop() error                     { return nil }

func (ShapesScreen) Draw(gc *gfx.Context, st state.State) {
	cells := layout.Quadrants(image.Rect(0, 0, gc.Width(), gc.Height()))
	label := render.TextStyle{Color: gfx.Black, Align: render.TextAlignCenter}

	lines := layout.Inset(cells[0], 6)
	render.DrawText(gc, "lines", lines, lines.Min.Y, label)
	cx, cy := lines.Min.X+lines.Dx()/2, lines.Min.Y+lines.Dy()/2+6
	step := lines.Dx() / 8
	if step < 1 {
		step = 1
	}
	for i, x := 0, lines.Min.X; x <= lines.Max.X; i, x = i+1, x+step {
		gc.Line(cx, cy, x, lines.Max.Y-1, palette[i%len(palette)])
		gc.Line(cx, cy, x, lines.Min.Y+12, palette[(i+2)%len(palette)])
	}

	rects := layout.Inset(cells[1], 6)
	render.DrawText(gc, "rects", rects, rects.Min.Y, label)
	for i := 0; i < 4; i++ {
		inset := layout.Inset(image.Rect(rects.Min.X, rects.Min.Y+12, rects.Max.X, rects.Max.Y), i*10)
		if inset.Empty() {
			break
		}
		if i%2 == 0 {
			gc.Rect(inset.Min.X, inset.Min.Y, inset.Dx(), inset.Dy(), palette[i])
		} else {
			gc.FillRoundedRect(inset.Min.X, inset.Min.Y, inset.Dx(), inset.Dy(), 4+i*2, palette[i])
		}
	}

	circles := layout.Inset(cells[2], 6)
	render.DrawText(gc, "circles", circles, circles.Min.Y, label)
	area := layout.Center(circles.Add(image.Pt(0, 6)), circles.Dx(), circles.Dy()-12)
	r := area.Dx()
	if area.Dy() < r {
		r = area.Dy()
	}
	r /= 2
	mx, my := area.Min.X+area.Dx()/2, area.Min.Y+area.Dy()/2
	for i := 0; r-i*8 > 0; i++ {
		if i%2 == 0 {
			gc.Circle(mx, my, r-i*8, palette[i%len(palette)])
		} else {
			gc.FillCircle(mx, my, r-i*8, palette[i%len(palette)])
		}
	}

	drawBuffered(gc, layout.Inset(cells[3], 6), label)
	drawStatus(gc, st)
}

// drawBuffered draws a bar chart into a framebuffer covering rect, then
// flushes it as one bitmap.
func drawBuffered(gc *gfx.Context, rect image.Rectangle, label render.TextStyle) {
	if rect.Empty() || !gc.CreateFramebuffer(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()) {
		render.DrawText(gc, "no buffer", rect, rect.Min.Y, label)
		return
	}
	defer gc.DestroyFramebuffer()

	gc.FillFramebuffer(gfx.White)
	for x := 0; x < rect.Dx(); x++ {
		t := float64(x) / float64(rect.Dx())
		gc.FastVLine(rect.Min.X+x, rect.Min.Y, 12, render.Background.Blend(render.Foreground, t))
	}
	render.DrawText(gc, "buffered", rect, rect.Min.Y+2, label)
	bars := []int{3, 7, 5, 9, 4, 6}
	chart := layout.Inset(image.Rect(rect.Min.X, rect.Min.Y+14, rect.Max.X, rect.Max.Y), 4)
	bw := chart.Dx() / len(bars)
	for i, v := range bars {
		h := chart.Dy() * v / 10
		gc.FillRect(chart.Min.X+i*bw+1, chart.Max.Y-h, bw-2, h, palette[i%len(palette)])
	}
	gc.Flush()
}
