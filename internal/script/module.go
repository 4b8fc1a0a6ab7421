package script

import (
	"image"
	"math"
	"sort"

	"github.com/rook-computer/tftgfx/internal/gfx"
	lua "github.com/yuin/gopher-lua"
)

// Module implements the gfx table.
type Module struct {
	gc    *gfx.Context
	fonts map[string]*gfx.Font
}

// NewModule binds a module to gc. fonts are selectable by name with
// gfx.font(name).
func NewModule(gc *gfx.Context, fonts map[string]*gfx.Font) *Module {
	return &Module{gc: gc, fonts: fonts}
}

func (m *Module) Name() string { return "gfx" }

// Register installs the module as a global table.
func (m *Module) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "width", L.NewFunction(m.width))
	L.SetField(mod, "height", L.NewFunction(m.height))
	L.SetField(mod, "rgb", L.NewFunction(m.rgb))

	L.SetField(mod, "pixel", L.NewFunction(m.pixel))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "hline", L.NewFunction(m.hline))
	L.SetField(mod, "vline", L.NewFunction(m.vline))
	L.SetField(mod, "rect", L.NewFunction(m.rect))
	L.SetField(mod, "fill_rect", L.NewFunction(m.fillRect))
	L.SetField(mod, "round_rect", L.NewFunction(m.roundRect))
	L.SetField(mod, "circle", L.NewFunction(m.circle))
	L.SetField(mod, "fill_circle", L.NewFunction(m.fillCircle))
	L.SetField(mod, "fill_screen", L.NewFunction(m.fillScreen))
	L.SetField(mod, "clear", L.NewFunction(m.clear))

	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "color", L.NewFunction(m.color))
	L.SetField(mod, "back", L.NewFunction(m.back))
	L.SetField(mod, "size", L.NewFunction(m.size))
	L.SetField(mod, "wrap", L.NewFunction(m.wrap))
	L.SetField(mod, "font", L.NewFunction(m.font))
	L.SetField(mod, "fonts", L.NewFunction(m.fontNames))
	L.SetField(mod, "print", L.NewFunction(m.print))
	L.SetField(mod, "measure", L.NewFunction(m.measure))
	L.SetField(mod, "register", L.NewFunction(m.register))

	L.SetField(mod, "framebuffer", L.NewFunction(m.framebuffer))
	L.SetField(mod, "fill_framebuffer", L.NewFunction(m.fillFramebuffer))
	L.SetField(mod, "destroy_framebuffer", L.NewFunction(m.destroyFramebuffer))
	L.SetField(mod, "flush", L.NewFunction(m.flush))

	L.SetGlobal(m.Name(), mod)
	return nil
}

// checkColor reads a "#rrggbb" string or 0xRRGGBB number.
func checkColor(L *lua.LState, n int) gfx.Color {
	switch v := L.Get(n).(type) {
	case lua.LString:
		c, err := gfx.ParseHex(string(v))
		if err != nil {
			L.ArgError(n, err.Error())
			return gfx.Color{}
		}
		return c
	case lua.LNumber:
		rgb := int64(v)
		if rgb < 0 || rgb > 0xFFFFFF {
			L.ArgError(n, "color out of range")
			return gfx.Color{}
		}
		return gfx.RGB(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
	default:
		L.ArgError(n, "color expected")
		return gfx.Color{}
	}
}

// width() -> pixels
func (m *Module) width(L *lua.LState) int {
	L.Push(lua.LNumber(m.gc.Width()))
	return 1
}

// height() -> pixels
func (m *Module) height(L *lua.LState) int {
	L.Push(lua.LNumber(m.gc.Height()))
	return 1
}

// rgb(r, g, b) -> 0xRRGGBB
func (m *Module) rgb(L *lua.LState) int {
	r, g, b := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	for i, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			L.ArgError(i+1, "component must be 0-255")
			return 0
		}
	}
	L.Push(lua.LNumber(r<<16 | g<<8 | b))
	return 1
}

func (m *Module) pixel(L *lua.LState) int {
	checkDeadline(L)
	m.gc.SetPixel(L.CheckInt(1), L.CheckInt(2), checkColor(L, 3))
	return 0
}

func (m *Module) line(L *lua.LState) int {
	x0, y0, x1, y1 := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4)
	c := checkColor(L, 5)
	charge(L, math.Max(span(x0, x1), span(y0, y1)))
	m.gc.Line(x0, y0, x1, y1, c)
	return 0
}

func (m *Module) hline(L *lua.LState) int {
	x, y, l := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	c := checkColor(L, 4)
	charge(L, math.Abs(float64(l))+2)
	m.gc.FastHLine(x, y, l, c)
	return 0
}

func (m *Module) vline(L *lua.LState) int {
	x, y, l := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	c := checkColor(L, 4)
	charge(L, math.Abs(float64(l))+2)
	m.gc.FastVLine(x, y, l, c)
	return 0
}

func (m *Module) rect(L *lua.LState) int {
	x, y, w, h := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4)
	c := checkColor(L, 5)
	charge(L, 2*(math.Abs(float64(w))+math.Abs(float64(h))+4))
	m.gc.Rect(x, y, w, h, c)
	return 0
}

// fill_rect(x, y, w, h, color)
// Positive sizes are clipped to the viewport and the framebuffer region,
// which leaves the visible result unchanged.
func (m *Module) fillRect(L *lua.LState) int {
	x, y, w, h := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4)
	c := checkColor(L, 5)
	if w <= 0 || h <= 0 {
		charge(L, math.Max(float64(w), 0)*(math.Abs(float64(h))+2))
		m.gc.FillRect(x, y, w, h, c)
		return 0
	}
	checkDeadline(L)
	for _, r := range m.clipTargets(x, y, w, h) {
		m.gc.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c)
	}
	return 0
}

// clipTargets intersects a rectangle with every area a write can land in.
// Overlapping parts are returned twice; filling them again is harmless.
func (m *Module) clipTargets(x, y, w, h int) []image.Rectangle {
	rect := image.Rect(x, y, satAdd(x, w), satAdd(y, h))
	areas := []image.Rectangle{image.Rect(0, 0, m.gc.Width(), m.gc.Height())}
	if region, ok := m.gc.Framebuffer(); ok {
		areas = append(areas, image.Rect(region.X, region.Y, satAdd(region.X, region.Width), satAdd(region.Y, region.Height)))
	}
	var out []image.Rectangle
	for _, area := range areas {
		if r := rect.Intersect(area); !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

// round_rect(x, y, w, h, r, color)
func (m *Module) roundRect(L *lua.LState) int {
	x, y, w, h, r := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), L.CheckInt(5)
	c := checkColor(L, 6)
	if w > 0 && h > 0 {
		charge(L, float64(w)*float64(h))
	}
	m.gc.FillRoundedRect(x, y, w, h, r, c)
	return 0
}

func (m *Module) circle(L *lua.LState) int {
	x, y, r := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	c := checkColor(L, 4)
	charge(L, 8*(math.Abs(float64(r))+1))
	m.gc.Circle(x, y, r, c)
	return 0
}

func (m *Module) fillCircle(L *lua.LState) int {
	x, y, r := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	c := checkColor(L, 4)
	d := 2*math.Abs(float64(r)) + 1
	charge(L, d*d)
	m.gc.FillCircle(x, y, r, c)
	return 0
}

func (m *Module) fillScreen(L *lua.LState) int {
	c := checkColor(L, 1)
	checkDeadline(L)
	m.gc.FillScreen(c)
	return 0
}

// clear([color]) paints the clear color, replacing it first when given.
func (m *Module) clear(L *lua.LState) int {
	if L.GetTop() >= 1 {
		m.gc.SetClearColor(checkColor(L, 1))
	}
	checkDeadline(L)
	m.gc.ClearScreen()
	return 0
}

// cursor([x, y]) -> x, y
// Moves the cursor when called with coordinates; always returns it.
func (m *Module) cursor(L *lua.LState) int {
	if L.GetTop() >= 2 {
		m.gc.SetCursor(L.CheckInt(1), L.CheckInt(2))
	}
	x, y := m.gc.Cursor()
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	return 2
}

func (m *Module) color(L *lua.LState) int {
	m.gc.SetTextColor(checkColor(L, 1))
	return 0
}

func (m *Module) back(L *lua.LState) int {
	m.gc.SetTextBack(checkColor(L, 1))
	return 0
}

// size(sx [, sy]) sets the text scale; sy defaults to sx. Scales run
// 1-255 like the panel firmware's byte-sized ones.
func (m *Module) size(L *lua.LState) int {
	sx := L.CheckInt(1)
	sy := L.OptInt(2, sx)
	if sx > maxTextScale {
		L.ArgError(1, "text scale above 255")
		return 0
	}
	if sy > maxTextScale {
		L.ArgError(2, "text scale above 255")
		return 0
	}
	m.gc.SetTextSize(sx, sy)
	return 0
}

func (m *Module) wrap(L *lua.LState) int {
	m.gc.SetWrap(L.CheckBool(1))
	return 0
}

// font([name]) selects a named font, or the classic font without a name.
func (m *Module) font(L *lua.LState) int {
	if L.GetTop() == 0 || L.Get(1) == lua.LNil {
		m.gc.SetFont(nil)
		return 0
	}
	name := L.CheckString(1)
	f, ok := m.fonts[name]
	if !ok {
		L.ArgError(1, "unknown font "+name)
		return 0
	}
	m.gc.SetFont(f)
	return 0
}

// fonts() -> {names}
func (m *Module) fontNames(L *lua.LState) int {
	names := make([]string, 0, len(m.fonts))
	for name := range m.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	tbl := L.NewTable()
	for i, name := range names {
		tbl.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// print(...) writes every argument as text, without separators. The
// deadline is checked between characters.
func (m *Module) print(L *lua.LState) int {
	perChar := m.charCost()
	for i := 1; i <= L.GetTop(); i++ {
		for _, r := range L.ToStringMeta(L.Get(i)).String() {
			charge(L, perChar)
			m.gc.Print(string(r))
		}
	}
	return 0
}

// charCost bounds the pixel writes of one character at the current scale.
func (m *Module) charCost() float64 {
	cell := 6.0 * 8
	if f := m.gc.Font(); f != nil {
		cell = float64(f.YAdvance) * float64(f.YAdvance)
		if cell < 1 {
			cell = 1
		}
	}
	sx, sy := m.gc.TextSize()
	return cell * float64(sx) * float64(sy)
}

// measure(s) -> w, h
func (m *Module) measure(L *lua.LState) int {
	w, h := m.gc.MeasureText(L.CheckString(1))
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}

// register(s) -> count
// Adds every rune of s to the extended registry and returns how many are
// drawable. Runes already present do not take another slot, so scripts can
// register on every run.
func (m *Module) register(L *lua.LState) int {
	n := 0
	for _, r := range L.CheckString(1) {
		if r < gfx.RegistrySize || m.gc.CharFor(r) != gfx.FallbackCode || m.gc.AddExtraCharacter(r) {
			n++
		}
	}
	L.Push(lua.LNumber(n))
	return 1
}

// framebuffer(x, y, w, h) -> ok
func (m *Module) framebuffer(L *lua.LState) int {
	ok := m.gc.CreateFramebuffer(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
	L.Push(lua.LBool(ok))
	return 1
}

func (m *Module) fillFramebuffer(L *lua.LState) int {
	L.Push(lua.LBool(m.gc.FillFramebuffer(checkColor(L, 1))))
	return 1
}

func (m *Module) destroyFramebuffer(L *lua.LState) int {
	m.gc.DestroyFramebuffer()
	return 0
}

// flush() -> ok
func (m *Module) flush(L *lua.LState) int {
	L.Push(lua.LBool(m.gc.Flush()))
	return 1
}

// maxCallPixels caps the pixel writes one drawing call may make, so a
// script's deadline is reached between calls.
const maxCallPixels = 1 << 22

const maxTextScale = 255

// checkDeadline raises a Lua error once the script's context is done.
func checkDeadline(L *lua.LState) {
	if ctx := L.Context(); ctx != nil {
		if err := ctx.Err(); err != nil {
			L.RaiseError("%v", err)
		}
	}
}

// charge checks the deadline and refuses calls costing more than
// maxCallPixels.
func charge(L *lua.LState, pixels float64) {
	checkDeadline(L)
	if pixels > maxCallPixels {
		L.RaiseError("shape too large: about %.0f pixels, limit %d", pixels, maxCallPixels)
	}
}

func span(a, b int) float64 {
	return math.Abs(float64(b)-float64(a)) + 1
}

// satAdd adds without wrapping past the int range.
func satAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}
