package gfx

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Line draws from (x0, y0) to (x1, y1) inclusive with integer Bresenham.
// Steep lines step along y so the result has no gaps.
func (ctx *Context) Line(x0, y0, x1, y1 int, c Color) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	err := dx / 2
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		if steep {
			ctx.SetPixel(y0, x0, c)
		} else {
			ctx.SetPixel(x0, y0, c)
		}
		err -= dy
		if err < 0 {
			y0 += ystep
			err += dx
		}
	}
}

// FastVLine draws h pixels down from (x, y). Non-positive heights go
// through Line unchanged and end at or above the start point.
func (ctx *Context) FastVLine(x, y, h int, c Color) {
	ctx.Line(x, y, x, y+h-1, c)
}

// FastHLine draws l pixels right from (x, y); see FastVLine for l <= 0.
func (ctx *Context) FastHLine(x, y, l int, c Color) {
	ctx.Line(x, y, x+l-1, y, c)
}

func (ctx *Context) Rect(x, y, w, h int, c Color) {
	ctx.FastHLine(x, y, w, c)
	ctx.FastHLine(x, y+h-1, w, c)
	ctx.FastVLine(x, y, h, c)
	ctx.FastVLine(x+w-1, y, h, c)
}

// FillRect fills columns [x, x+w) by rows [y, y+h), one vertical line per
// column.
func (ctx *Context) FillRect(x, y, w, h int, c Color) {
	for i := x; i < x+w; i++ {
		ctx.FastVLine(i, y, h, c)
	}
}

// FillScreen paints the whole viewport.
func (ctx *Context) FillScreen(c Color) {
	ctx.FillRect(0, 0, ctx.Width(), ctx.Height(), c)
}

func (ctx *Context) SetClearColor(c Color) { ctx.clearColor = c }

// ClearScreen fills the viewport with the clear color.
func (ctx *Context) ClearScreen() {
	ctx.FillScreen(ctx.clearColor)
}

// FillRoundedRect fills a rectangle whose corners are quarter circles of
// radius r. r is clamped to half the width and height; r <= 0 is a plain
// FillRect.
func (ctx *Context) FillRoundedRect(x, y, w, h, r int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if r <= 0 {
		ctx.FillRect(x, y, w, h, c)
		return
	}
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}

	ctx.FillRect(x+r, y, w-2*r, h, c)
	ctx.fillCircleHelper(x+w-r-1, y+r, r, cornerRight, h-2*r-1, c)
	ctx.fillCircleHelper(x+r, y+r, r, cornerLeft, h-2*r-1, c)
}

// Circle outlines a circle with the midpoint algorithm.
func (ctx *Context) Circle(x0, y0, r int, c Color) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x := 0
	y := r

	ctx.SetPixel(x0, y0+r, c)
	ctx.SetPixel(x0, y0-r, c)
	ctx.SetPixel(x0+r, y0, c)
	ctx.SetPixel(x0-r, y0, c)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		ctx.SetPixel(x0+x, y0+y, c)
		ctx.SetPixel(x0-x, y0+y, c)
		ctx.SetPixel(x0+x, y0-y, c)
		ctx.SetPixel(x0-x, y0-y, c)
		ctx.SetPixel(x0+y, y0+x, c)
		ctx.SetPixel(x0-y, y0+x, c)
		ctx.SetPixel(x0+y, y0-x, c)
		ctx.SetPixel(x0-y, y0-x, c)
	}
}

func (ctx *Context) FillCircle(x0, y0, r int, c Color) {
	ctx.FastVLine(x0, y0-r, 2*r+1, c)
	ctx.fillCircleHelper(x0, y0, r, cornerRight|cornerLeft, 0, c)
}

const (
	cornerRight = 1 << iota
	cornerLeft
)

// fillCircleHelper fills the left and/or right halves of a circle as
// vertical spans, each stretched by delta rows so rounded corners meet the
// rectangle body. Columns are never drawn twice.
func (ctx *Context) fillCircleHelper(x0, y0, r int, corners int, delta int, c Color) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x := 0
	y := r
	px := x
	py := y

	delta++

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if x < y+1 {
			if corners&cornerRight != 0 {
				ctx.FastVLine(x0+x, y0-y, 2*y+delta, c)
			}
			if corners&cornerLeft != 0 {
				ctx.FastVLine(x0-x, y0-y, 2*y+delta, c)
			}
		}
		if y != py {
			if corners&cornerRight != 0 {
				ctx.FastVLine(x0+py, y0-px, 2*px+delta, c)
			}
			if corners&cornerLeft != 0 {
				ctx.FastVLine(x0-py, y0-px, 2*px+delta, c)
			}
			py = y
		}
		px = x
	}
}
