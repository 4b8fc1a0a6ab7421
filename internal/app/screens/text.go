package screens

import (
	"context"
	"image"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/state"
)

const pangram = "Příliš žluťoučký kůň úpěl ďábelské ódy."

// TextScreen shows the classic font at several scales, accented letters,
// and a custom font when one is loaded.
type TextScreen struct {
	Font *gfx.Font
}

func (TextScreen) Start(ctx context.Context) error { return nil }
func (TextScreen) Stop() error                     { return nil }

func (s TextScreen) Draw(gc *gfx.Context, st state.State) {
	ensureRegistered(gc, pangram+"ŮŠČŘŽÝÁÍÉ")
	full := image.Rect(0, 0, gc.Width(), gc.Height())

	gc.SetTextColor(gfx.Black)
	gc.SetTextBack(render.Background)
	gc.SetCursor(4, 4)
	for size := 1; size <= 3; size++ {
		gc.SetTextSize(size, size)
		gc.Printf("size %d\n", size)
	}

	gc.SetTextSize(1, 1)
	gc.SetTextColor(render.Foreground)
	gc.Print("\n" + pangram + "\n\n")
	gc.SetTextSize(2, 2)
	gc.Print("ŮŠČŘŽ ÝÁÍÉ\n")

	_, y := gc.Cursor()
	y += 8
	gc.FastHLine(0, y, gc.Width(), gfx.Black)
	y += 8

	if s.Font != nil {
		gc.SetTextSize(1, 1)
		gc.SetTextColor(gfx.Black)
		gc.SetCursor(4, y)
		gc.SetFont(s.Font)
		gc.Print("Custom font\n")
		gc.Print("wraps long lines at the edge of the panel")
		gc.SetFont(nil)
		_, y = gc.Cursor()
		y += 12
	}

	render.DrawText(gc, "transparent + shadow", full, y, render.TextStyle{
		Color: gfx.White, Size: 2, Align: render.TextAlignCenter, Shadow: true,
	})
	drawStatus(gc, st)
}
