// Package gfx is a small immediate-mode graphics core for RGB panels:
// pixels, lines, rectangles, circles and two text paths (the classic 5x8
// charset with diacritic overlays, and packed 1-bit glyph fonts).
//
// A Context holds everything that persists between calls: the text cursor,
// colors, active font, the optional offscreen framebuffer region and the
// extended-character registry. A Context is not safe for concurrent use;
// callers that share one across goroutines must serialize access.
package gfx

// Context is a single rendering session bound to one Driver.
type Context struct {
	driver Driver
	accel  Accelerator
	logger Logger

	direct directSink
	fb     *bufferSink

	cursorX, cursorY int
	fg, bg           Color
	clearColor       Color
	wrap             bool
	sizeX, sizeY     int
	font             *Font

	registry Registry
}

type Option func(*Context)

// WithAccelerator replaces the software byte loop used for framebuffer
// fills and copies.
func WithAccelerator(a Accelerator) Option {
	return func(ctx *Context) {
		if a != nil {
			ctx.accel = a
		}
	}
}

func WithLogger(l Logger) Option {
	return func(ctx *Context) {
		if l != nil {
			ctx.logger = l
		}
	}
}

// New returns a context with the power-on defaults: cursor at the origin,
// white on black text, wrap enabled, scale 1, classic font.
func New(d Driver, opts ...Option) *Context {
	if d == nil {
		d = NoopDriver{}
	}
	ctx := &Context{
		driver:     d,
		accel:      ByteLoop{},
		logger:     noopLogger{},
		direct:     directSink{driver: d},
		fg:         White,
		bg:         Black,
		clearColor: Black,
		wrap:       true,
		sizeX:      1,
		sizeY:      1,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

func (ctx *Context) Driver() Driver { return ctx.driver }

// Width is the driver's current logical width.
func (ctx *Context) Width() int {
	w, _ := ctx.driver.Size()
	return w
}

// Height is the driver's current logical height.
func (ctx *Context) Height() int {
	_, h := ctx.driver.Size()
	return h
}

// Registry exposes the extended-character registry of this context.
func (ctx *Context) Registry() *Registry { return &ctx.registry }

// Reset restores the text state and colors set by New and drops the
// framebuffer region. Registered extended characters are kept.
func (ctx *Context) Reset() {
	ctx.fb = nil
	ctx.cursorX, ctx.cursorY = 0, 0
	ctx.fg, ctx.bg = White, Black
	ctx.wrap = true
	ctx.sizeX, ctx.sizeY = 1, 1
	ctx.font = nil
}
