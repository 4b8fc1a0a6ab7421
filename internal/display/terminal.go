package display

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// upperHalf paints the top pixel as foreground and the bottom one as
// background, so each cell carries two rows.
const upperHalf = '▀'

// Terminal shows a Canvas in a truecolor terminal. Drawing goes to the
// canvas; Present repaints the screen, shrinking the image when it does not
// fit.
type Terminal struct {
	*Canvas
	mu     sync.Mutex
	screen tcell.Screen
}

// OpenTerminal takes over the controlling terminal.
func OpenTerminal(width, height int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewTerminal(screen, width, height), nil
}

// NewTerminal wraps an initialized screen.
func NewTerminal(screen tcell.Screen, width, height int) *Terminal {
	screen.HideCursor()
	return &Terminal{Canvas: NewCanvas(width, height), screen: screen}
}

func (t *Terminal) Present() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	img := t.fit(t.Canvas.Image())
	b := img.Bounds()
	for cy := 0; cy*2 < b.Dy(); cy++ {
		for cx := 0; cx < b.Dx(); cx++ {
			top := img.RGBAAt(cx, cy*2)
			bottom := img.RGBAAt(cx, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// fit shrinks img to the screen, keeping the aspect ratio. Images that fit
// are returned unchanged.
func (t *Terminal) fit(img *image.RGBA) *image.RGBA {
	cols, rows := t.screen.Size()
	maxW, maxH := cols, rows*2
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	nw, nh := maxW, h*maxW/w
	if nh > maxH {
		nw, nh = w*maxH/h, maxH
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// WaitForKey blocks until a key is pressed or ctx is done. Resize events
// repaint the screen.
func (t *Terminal) WaitForKey(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		switch t.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			return nil
		case *tcell.EventResize:
			t.screen.Sync()
			if err := t.Present(); err != nil {
				return err
			}
		case *tcell.EventInterrupt:
			return ctx.Err()
		}
	}
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
	return nil
}
