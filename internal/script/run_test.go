package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rook-computer/tftgfx/internal/assets"
	"github.com/rook-computer/tftgfx/internal/display"
	"github.com/rook-computer/tftgfx/internal/fontconv"
	"github.com/rook-computer/tftgfx/internal/gfx"
)

type logRecorder struct {
	infos []string
}

func (l *logRecorder) Infof(component, format string, args ...interface{}) {
	l.infos = append(l.infos, component+": "+fmt.Sprintf(format, args...))
}

func (l *logRecorder) Errorf(component, format string, args ...interface{}) {}

func setup(t *testing.T) (*display.Canvas, *gfx.Context) {
	t.Helper()
	canvas := display.NewCanvas(64, 48)
	return canvas, gfx.New(canvas)
}

func run(t *testing.T, gc *gfx.Context, src string) {
	t.Helper()
	if err := Run(context.Background(), gc, src, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestShapes(t *testing.T) {
	canvas, gc := setup(t)
	run(t, gc, `
		gfx.fill_screen("#000080")
		gfx.fill_rect(2, 2, 4, 4, 0xff0000)
		gfx.pixel(40, 40, gfx.rgb(0, 255, 0))
		gfx.line(0, 47, 63, 47, "#ffffff")
		gfx.fill_circle(30, 20, 3, "#ffff00")
		gfx.round_rect(50, 2, 10, 10, 3, "#00ffff")
	`)

	checks := []struct {
		x, y int
		want gfx.Color
	}{
		{0, 0, gfx.RGB(0, 0, 0x80)},
		{3, 3, gfx.RGB(0xFF, 0, 0)},
		{40, 40, gfx.RGB(0, 0xFF, 0)},
		{63, 47, gfx.White},
		{30, 20, gfx.RGB(0xFF, 0xFF, 0)},
		{55, 7, gfx.RGB(0, 0xFF, 0xFF)},
		{50, 2, gfx.RGB(0, 0, 0x80)},
	}
	for _, c := range checks {
		if got := canvas.At(c.x, c.y); !got.Equal(c.want) {
			t.Errorf("(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestTextState(t *testing.T) {
	_, gc := setup(t)
	run(t, gc, `
		gfx.cursor(0, 0)
		gfx.size(2)
		gfx.wrap(false)
		gfx.color("#ff0000")
		gfx.print("Hi", 1)
		local x, y = gfx.cursor()
		assert(x == 36, "x = " .. x)
		assert(y == 0)
		local w, h = gfx.measure("abc")
		assert(w == 36 and h == 16)
		assert(gfx.width() == 64 and gfx.height() == 48)
	`)
	if sx, sy := gc.TextSize(); sx != 2 || sy != 2 {
		t.Errorf("size = %dx%d", sx, sy)
	}
	if gc.Wrap() {
		t.Errorf("wrap still enabled")
	}
	if fg, _ := gc.TextColors(); !fg.Equal(gfx.RGB(0xFF, 0, 0)) {
		t.Errorf("fg = %v", fg)
	}
}

func TestRegisterAndPrint(t *testing.T) {
	_, gc := setup(t)
	run(t, gc, `
		assert(gfx.register("čř") == 2)
		assert(gfx.register("čř") == 2)
		gfx.print("č")
	`)
	if n := gc.Registry().Len(); n != 2 {
		t.Errorf("registry holds %d runes, want 2", n)
	}
	if got := gc.CharFor('ř'); got != 129 {
		t.Errorf("CharFor('ř') = %d, want 129", got)
	}
	if x, _ := gc.Cursor(); x != 6 {
		t.Errorf("cursor x = %d, want 6", x)
	}
}

func TestFonts(t *testing.T) {
	_, gc := setup(t)
	fonts := map[string]*gfx.Font{"basic": fontconv.Basic()}
	err := Run(context.Background(), gc, `
		local names = gfx.fonts()
		assert(#names == 1 and names[1] == "basic")
		gfx.cursor(0, 0)
		gfx.font("basic")
	`, Options{Fonts: fonts})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gc.Font() == nil {
		t.Fatal("font not selected")
	}
	if _, y := gc.Cursor(); y != 6 {
		t.Errorf("cursor y = %d, want the 6px baseline shift", y)
	}

	run(t, gc, `gfx.font()`)
	if gc.Font() != nil {
		t.Errorf("font() did not restore the classic font")
	}

	err = Run(context.Background(), gc, `gfx.font("nope")`, Options{Fonts: fonts})
	if err == nil || !strings.Contains(err.Error(), "unknown font") {
		t.Errorf("unknown font error = %v", err)
	}
}

func TestFramebuffer(t *testing.T) {
	canvas, gc := setup(t)
	run(t, gc, `
		assert(gfx.framebuffer(0, 0, 40001, 1) == false)
		assert(gfx.framebuffer(10, 10, 8, 8) == true)
		assert(gfx.fill_framebuffer("#00ff00"))
		gfx.pixel(12, 12, "#ff0000")
	`)
	if got := canvas.At(12, 12); !got.Equal(gfx.Black) {
		t.Errorf("buffered pixel reached the panel before flush: %v", got)
	}
	run(t, gc, `assert(gfx.flush()); gfx.destroy_framebuffer(); assert(gfx.flush() == false)`)
	if got := canvas.At(12, 12); !got.Equal(gfx.RGB(0xFF, 0, 0)) {
		t.Errorf("(12, 12) = %v after flush", got)
	}
	if got := canvas.At(17, 17); !got.Equal(gfx.RGB(0, 0xFF, 0)) {
		t.Errorf("(17, 17) = %v after flush", got)
	}
}

func TestArgumentErrors(t *testing.T) {
	_, gc := setup(t)
	tests := []struct {
		name string
		src  string
	}{
		{"bad hex", `gfx.pixel(0, 0, "#zz0000")`},
		{"color range", `gfx.pixel(0, 0, 0x1000000)`},
		{"color type", `gfx.pixel(0, 0, true)`},
		{"missing arg", `gfx.line(0, 0, 1)`},
		{"rgb range", `gfx.rgb(0, 256, 0)`},
		{"syntax", `gfx.pixel(`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Run(context.Background(), gc, tt.src, Options{}); err == nil {
				t.Errorf("Run(%q) succeeded", tt.src)
			}
		})
	}
}

func TestSandbox(t *testing.T) {
	_, gc := setup(t)
	run(t, gc, `
		assert(dofile == nil and loadfile == nil and load == nil and require == nil)
		assert(io == nil and os == nil)
		assert(string.format("%02d", 7) == "07")
		assert(math.floor(2.5) == 2)
	`)
}

func TestPrintLogs(t *testing.T) {
	_, gc := setup(t)
	logs := &logRecorder{}
	if err := Run(context.Background(), gc, `print("hello", 42)`, Options{Logger: logs}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(logs.infos) != 1 || logs.infos[0] != "script: hello\t42" {
		t.Errorf("logs = %q", logs.infos)
	}
	if x, _ := gc.Cursor(); x != 0 {
		t.Errorf("Lua print drew text")
	}
}

func TestTimeout(t *testing.T) {
	_, gc := setup(t)
	start := time.Now()
	err := Run(context.Background(), gc, `while true do end`, Options{Timeout: 50 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout took %v", time.Since(start))
	}
}

func TestHugeFillRectIsClipped(t *testing.T) {
	canvas, gc := setup(t)
	start := time.Now()
	err := Run(context.Background(), gc, `
		gfx.fill_rect(0, 0, 200000, 200000, "#ff0000")
		gfx.framebuffer(100, 100, 4, 4)
		gfx.fill_rect(-1000000, -1000000, 2000000, 2000000, "#00ff00")
	`, Options{Timeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d := time.Since(start); d > 2*time.Second {
		t.Errorf("fill took %v", d)
	}
	if got := canvas.At(63, 47); !got.Equal(gfx.RGB(0, 0xFF, 0)) {
		t.Errorf("corner = %v, want green", got)
	}
	region, ok := gc.Framebuffer()
	if !ok {
		t.Fatal("framebuffer gone")
	}
	buf := region.Bytes()
	if buf[0] != 0 || buf[1] != 0xFF || buf[len(buf)-2] != 0xFF {
		t.Errorf("off-screen region not filled: %v", buf)
	}
}

func TestOversizedCallsRefused(t *testing.T) {
	for _, src := range []string{
		`gfx.line(0, 0, 100000000, 0, "#ffffff")`,
		`gfx.hline(0, 0, 100000000, "#ffffff")`,
		`gfx.fill_circle(10, 10, 1000000, "#ffffff")`,
		`gfx.round_rect(0, 0, 100000, 100000, 4, "#ffffff")`,
		`gfx.rect(0, 0, 100000000, 10, "#ffffff")`,
		`gfx.size(1000)`,
	} {
		t.Run(src, func(t *testing.T) {
			_, gc := setup(t)
			err := Run(context.Background(), gc, src, Options{Timeout: time.Second})
			if err == nil {
				t.Fatal("oversized call accepted")
			}
			if errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("refused by timeout, want an immediate error: %v", err)
			}
		})
	}
}

func TestTimeoutInsideLongPrint(t *testing.T) {
	_, gc := setup(t)
	start := time.Now()
	err := Run(context.Background(), gc, `gfx.print(string.rep("x", 10000000))`, Options{Timeout: 50 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if d := time.Since(start); d > 2*time.Second {
		t.Errorf("timeout took %v", d)
	}
}

func TestWrappingFramebufferRefused(t *testing.T) {
	_, gc := setup(t)
	run(t, gc, `
		assert(gfx.framebuffer(0, 0, 4611686018427387904, 4) == false)
		assert(gfx.fill_framebuffer("#010203") == false)
	`)
	if _, ok := gc.Framebuffer(); ok {
		t.Errorf("region active after refused create")
	}
}

func TestBundledScripts(t *testing.T) {
	for _, name := range assets.ScriptNames() {
		t.Run(name, func(t *testing.T) {
			src, err := assets.Script(name)
			if err != nil {
				t.Fatalf("Script: %v", err)
			}
			_, gc := setup(t)
			run(t, gc, src)
		})
	}
}
