package gfx

// MaxFramebufferBytes bounds the offscreen region (200x200 pixels of RGB).
const MaxFramebufferBytes = 120000

// Region is a rectangular offscreen buffer mirroring part of the panel.
type Region struct {
	X, Y          int
	Width, Height int
	buf           []byte
}

// Contains reports whether (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Bytes returns the region's pixels (row-major RGB). The slice aliases the
// live buffer.
func (r Region) Bytes() []byte { return r.buf }

// CreateFramebuffer allocates an offscreen region. It returns false and
// leaves any existing region untouched when w*h*3 exceeds
// MaxFramebufferBytes or the size is empty. An existing region is replaced.
//
// The buffer contents are unspecified after creation: draw over the whole
// region before calling Flush.
func (ctx *Context) CreateFramebuffer(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		ctx.logger.Infof("gfx", "framebuffer %dx%d refused: empty", w, h)
		return false
	}
	// Divide instead of multiplying so huge sizes cannot wrap past the limit.
	if h > MaxFramebufferBytes/3 || w > MaxFramebufferBytes/(3*h) {
		ctx.logger.Infof("gfx", "framebuffer %dx%d refused: over limit %d bytes", w, h, MaxFramebufferBytes)
		return false
	}
	size := w * h * 3
	ctx.fb = &bufferSink{region: Region{X: x, Y: y, Width: w, Height: h, buf: make([]byte, size)}}
	return true
}

// DestroyFramebuffer releases the region. Safe to call without one.
func (ctx *Context) DestroyFramebuffer() {
	ctx.fb = nil
}

// Framebuffer returns the active region, if any.
func (ctx *Context) Framebuffer() (Region, bool) {
	if ctx.fb == nil {
		return Region{}, false
	}
	return ctx.fb.region, true
}

// Flush hands the region to the driver. It reports whether there was a
// region to send.
func (ctx *Context) Flush() bool {
	if ctx.fb == nil {
		return false
	}
	r := ctx.fb.region
	ctx.driver.WriteBitmap(r.X, r.Y, r.Width, r.Height, r.buf)
	return true
}

// FillFramebuffer paints the whole region with c using the accelerator.
// It is the cheap way to satisfy the full-overwrite obligation before Flush.
func (ctx *Context) FillFramebuffer(c Color) bool {
	if ctx.fb == nil {
		return false
	}
	buf := ctx.fb.region.buf
	if len(buf) < 3 {
		return false
	}
	if c.R == c.G && c.G == c.B {
		ctx.accel.Fill(buf, c.R)
		return true
	}
	buf[0], buf[1], buf[2] = c.R, c.G, c.B
	// Double the painted prefix until the buffer is full.
	for n := 3; n < len(buf); n *= 2 {
		ctx.accel.Copy(buf[n:], buf[:n])
	}
	return true
}

// SnapshotFramebuffer returns a copy of the region's pixels.
func (ctx *Context) SnapshotFramebuffer() []byte {
	if ctx.fb == nil {
		return nil
	}
	out := make([]byte, len(ctx.fb.region.buf))
	ctx.accel.Copy(out, ctx.fb.region.buf)
	return out
}
