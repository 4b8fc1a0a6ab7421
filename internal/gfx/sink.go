package gfx

// Sink receives single pixel writes.
type Sink interface {
	Set(x, y int, c Color)
}

type directSink struct {
	driver Driver
}

func (s directSink) Set(x, y int, c Color) {
	s.driver.WritePixel(x, y, c)
}

// bufferSink owns the offscreen region. Writes whose offset falls outside
// the buffer are dropped.
type bufferSink struct {
	region Region
}

func (s *bufferSink) Set(x, y int, c Color) {
	r := &s.region
	off := ((y-r.Y)*r.Width + (x - r.X)) * 3
	if off < 0 || off+3 > len(r.buf) {
		return
	}
	r.buf[off] = c.R
	r.buf[off+1] = c.G
	r.buf[off+2] = c.B
}

// sinkFor picks the buffered sink when (x, y) lies inside the active
// region and the panel otherwise.
func (ctx *Context) sinkFor(x, y int) Sink {
	if ctx.fb != nil && ctx.fb.region.Contains(x, y) {
		return ctx.fb
	}
	return ctx.direct
}

// SetPixel writes one pixel. Coordinates are not clipped against the
// viewport.
func (ctx *Context) SetPixel(x, y int, c Color) {
	ctx.sinkFor(x, y).Set(x, y, c)
}
