// Package display holds the panels a gfx.Context can draw to: an in-memory
// canvas, the Linux framebuffer and a truecolor terminal.
package display

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/tftgfx/internal/gfx"
	xdraw "golang.org/x/image/draw"
)

// Native panel geometry in rotation 0 (portrait).
const (
	NativeWidth  = 320
	NativeHeight = 480
)

// Canvas is a simulated RGB panel. Pixels live in panel memory order; the
// rotation decides how logical coordinates land there, the way MADCTL does
// on the real controller. Writes outside the viewport are dropped.
type Canvas struct {
	mu       sync.Mutex
	mem      *image.RGBA
	rotation int

	pixelWrites  atomic.Int64
	bitmapWrites atomic.Int64
}

// NewCanvas returns a panel of the given native size, cleared to black.
// Zero sizes pick the 320x480 default.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		width, height = NativeWidth, NativeHeight
	}
	mem := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(mem.Pix); i += 4 {
		mem.Pix[i] = 0xFF
	}
	return &Canvas{mem: mem}
}

// SetRotation selects one of four quarter turns; values wrap modulo 4.
func (c *Canvas) SetRotation(r int) {
	c.mu.Lock()
	c.rotation = ((r % 4) + 4) % 4
	c.mu.Unlock()
}

func (c *Canvas) Rotation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// Size reports the logical viewport for the current rotation.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sizeLocked()
}

func (c *Canvas) sizeLocked() (int, int) {
	b := c.mem.Bounds()
	if c.rotation%2 == 1 {
		return b.Dy(), b.Dx()
	}
	return b.Dx(), b.Dy()
}

// toMem maps a logical coordinate to panel memory.
func (c *Canvas) toMem(x, y int) (int, int, bool) {
	w, h := c.sizeLocked()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	nw, nh := c.mem.Bounds().Dx(), c.mem.Bounds().Dy()
	switch c.rotation {
	case 1:
		return nw - 1 - y, x, true
	case 2:
		return nw - 1 - x, nh - 1 - y, true
	case 3:
		return y, nh - 1 - x, true
	default:
		return x, y, true
	}
}

func (c *Canvas) setLocked(x, y int, r, g, b uint8) {
	mx, my, ok := c.toMem(x, y)
	if !ok {
		return
	}
	i := c.mem.PixOffset(mx, my)
	c.mem.Pix[i] = r
	c.mem.Pix[i+1] = g
	c.mem.Pix[i+2] = b
}

func (c *Canvas) WritePixel(x, y int, col gfx.Color) {
	c.mu.Lock()
	c.setLocked(x, y, col.R, col.G, col.B)
	c.mu.Unlock()
	c.pixelWrites.Add(1)
}

// WriteBitmap copies w*h RGB triplets row by row into the window at (x, y).
// Short buffers stop the copy early.
func (c *Canvas) WriteBitmap(x, y, w, h int, pix []byte) {
	c.mu.Lock()
	i := 0
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if i+3 > len(pix) {
				c.mu.Unlock()
				c.bitmapWrites.Add(1)
				return
			}
			c.setLocked(x+col, y+row, pix[i], pix[i+1], pix[i+2])
			i += 3
		}
	}
	c.mu.Unlock()
	c.bitmapWrites.Add(1)
}

// At returns the logical pixel at (x, y), or black outside the viewport.
func (c *Canvas) At(x, y int) gfx.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	mx, my, ok := c.toMem(x, y)
	if !ok {
		return gfx.Black
	}
	p := c.mem.RGBAAt(mx, my)
	return gfx.Color{R: p.R, G: p.G, B: p.B}
}

// Image returns a copy of the viewport as seen in the current rotation.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, h := c.sizeLocked()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mx, my, _ := c.toMem(x, y)
			out.SetRGBA(x, y, c.mem.RGBAAt(mx, my))
		}
	}
	return out
}

// Memory returns a copy of panel memory in native orientation.
func (c *Canvas) Memory() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := image.NewRGBA(c.mem.Bounds())
	copy(out.Pix, c.mem.Pix)
	return out
}

// Stats reports how many pixel and bitmap writes the panel has received.
func (c *Canvas) Stats() (pixels, bitmaps int64) {
	return c.pixelWrites.Load(), c.bitmapWrites.Load()
}

// EncodePNG writes the viewport as PNG, scaled up by an integer factor with
// nearest-neighbor sampling so single pixels stay crisp.
func (c *Canvas) EncodePNG(w io.Writer, scale int) error {
	img := c.Image()
	if scale > 1 {
		b := img.Bounds()
		big := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(big, big.Bounds(), img, b, xdraw.Src, nil)
		img = big
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Blit copies the viewport onto dst, scaled to fill its bounds with
// nearest-neighbor sampling.
func (c *Canvas) Blit(dst xdraw.Image) {
	src := c.Image()
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// Present is a no-op; canvas pixels are visible as soon as they are written.
func (c *Canvas) Present() error { return nil }

func (c *Canvas) Close() error { return nil }
