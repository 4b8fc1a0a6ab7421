package display

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rook-computer/tftgfx/internal/gfx"
)

func newSimTerminal(t *testing.T, cols, rows, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(cols, rows)
	term := NewTerminal(screen, w, h)
	t.Cleanup(func() { term.Close() })
	return term, screen
}

func cellColors(t *testing.T, screen tcell.Screen, x, y int) (rune, gfx.Color, gfx.Color) {
	t.Helper()
	mainc, _, style, _ := screen.GetContent(x, y) //nolint:staticcheck
	fg, bg, _ := style.Decompose()
	fr, fgG, fb := fg.RGB()
	br, bgG, bb := bg.RGB()
	return mainc,
		gfx.RGB(uint8(fr), uint8(fgG), uint8(fb)),
		gfx.RGB(uint8(br), uint8(bgG), uint8(bb))
}

func TestTerminalPresent(t *testing.T) {
	term, screen := newSimTerminal(t, 40, 20, 8, 6)
	red := gfx.RGB(0xFF, 0, 0)
	blue := gfx.RGB(0, 0, 0xFF)
	term.WritePixel(0, 0, red)
	term.WritePixel(0, 1, blue)
	term.WritePixel(3, 5, red)

	if err := term.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	r, fg, bg := cellColors(t, screen, 0, 0)
	if r != upperHalf || !fg.Equal(red) || !bg.Equal(blue) {
		t.Errorf("cell (0, 0) = %q %v on %v, want %q red on blue", r, fg, bg, upperHalf)
	}
	_, fg, bg = cellColors(t, screen, 3, 2)
	if !fg.Equal(gfx.Black) || !bg.Equal(red) {
		t.Errorf("cell (3, 2) = %v on %v, want black on red", fg, bg)
	}
	if r, _, _ := cellColors(t, screen, 8, 0); r == upperHalf {
		t.Errorf("cell past the canvas was painted")
	}
}

func TestTerminalFitsLargeCanvas(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 10, 320, 480)
	img := term.fit(term.Canvas.Image())
	if b := img.Bounds(); b.Dx() != 13 || b.Dy() != 20 {
		t.Errorf("fitted size = %dx%d, want 13x20", b.Dx(), b.Dy())
	}

	small, _ := newSimTerminal(t, 40, 10, 8, 6)
	if b := small.fit(small.Canvas.Image()).Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("small canvas resized to %v", b)
	}
}

func TestTerminalWaitForKey(t *testing.T) {
	term, screen := newSimTerminal(t, 20, 10, 8, 6)

	done := make(chan error, 1)
	go func() { done <- term.WaitForKey(context.Background()) }()
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForKey = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForKey did not return after a key press")
	}
}

func TestTerminalWaitForKeyCancel(t *testing.T) {
	term, _ := newSimTerminal(t, 20, 10, 8, 6)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- term.WaitForKey(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("WaitForKey = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForKey did not return after cancel")
	}
}
