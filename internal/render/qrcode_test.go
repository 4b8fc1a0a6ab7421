package render

import (
	"image"
	"testing"

	"github.com/rook-computer/tftgfx/internal/display"
	"github.com/rook-computer/tftgfx/internal/gfx"
)

func TestDrawQRCode(t *testing.T) {
	const payload = "http://192.168.1.2:8080/"
	canvas := display.NewCanvas(200, 200)
	gc := gfx.New(canvas)

	n, err := QRCodeModules(payload)
	if err != nil {
		t.Fatalf("QRCodeModules: %v", err)
	}
	side, err := DrawQRCode(gc, 10, 10, payload, 2, gfx.Black, gfx.White)
	if err != nil {
		t.Fatalf("DrawQRCode: %v", err)
	}
	if side != n*2 {
		t.Errorf("side = %d, want %d", side, n*2)
	}

	// Module centers of the top-left finder pattern behind a 4-module quiet zone.
	at := func(mx, my int) gfx.Color { return canvas.At(10+mx*2, 10+my*2) }
	checks := []struct {
		mx, my int
		want   gfx.Color
	}{
		{0, 0, gfx.White},
		{4, 4, gfx.Black},
		{5, 5, gfx.White},
		{6, 6, gfx.Black},
		{10, 4, gfx.Black},
	}
	for _, c := range checks {
		if got := at(c.mx, c.my); !got.Equal(c.want) {
			t.Errorf("module (%d, %d) = %v, want %v", c.mx, c.my, got, c.want)
		}
	}
	if got := canvas.At(9, 9); !got.Equal(gfx.Black) {
		t.Errorf("drew outside the code: %v", got)
	}
}

func TestDrawQRCodeEmpty(t *testing.T) {
	gc := gfx.New(gfx.NoopDriver{Width: 10, Height: 10})
	if side, err := DrawQRCode(gc, 0, 0, "", 3, gfx.Black, gfx.White); side != 0 || err != nil {
		t.Errorf("empty payload = %d, %v", side, err)
	}
}

func TestDrawQRCodeInRect(t *testing.T) {
	const payload = "tftgfx"
	canvas := display.NewCanvas(120, 80)
	gc := gfx.New(canvas)

	n, _ := QRCodeModules(payload)
	got, err := DrawQRCodeInRect(gc, image.Rect(0, 0, 120, 80), payload, gfx.Black, gfx.White)
	if err != nil {
		t.Fatalf("DrawQRCodeInRect: %v", err)
	}
	module := 80 / n
	if got.Dx() != n*module || got.Dy() != n*module {
		t.Errorf("rect = %v, want side %d", got, n*module)
	}
	if got.Min.X != (120-got.Dx())/2 {
		t.Errorf("not centered: %v", got)
	}

	small, err := DrawQRCodeInRect(gc, image.Rect(0, 0, 5, 5), payload, gfx.Black, gfx.White)
	if err != nil || !small.Empty() {
		t.Errorf("tiny rect = %v, %v", small, err)
	}
}
