package screens

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/rook-computer/tftgfx/internal/assets"
	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/script"
	"github.com/rook-computer/tftgfx/internal/state"
)

// ScriptPrefix marks screen names that run a bundled Lua script.
const ScriptPrefix = "lua/"

// Deps carries what the screens draw with.
type Deps struct {
	Fonts  map[string]*gfx.Font
	Logger gfx.Logger
}

var builtin = map[string]func(Deps) render.Screen{
	"splash": func(Deps) render.Screen { return SplashScreen{} },
	"text":   func(d Deps) render.Screen { return TextScreen{Font: pickFont(d.Fonts)} },
	"shapes": func(Deps) render.Screen { return ShapesScreen{} },
}

// Names lists the built-in screens followed by the bundled scripts.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, s := range assets.ScriptNames() {
		names = append(names, ScriptPrefix+s)
	}
	return names
}

// New builds the named screen. ok is false for unknown names.
func New(name string, deps Deps) (render.Screen, bool) {
	if mk, found := builtin[name]; found {
		return mk(deps), true
	}
	if rest, found := strings.CutPrefix(name, ScriptPrefix); found {
		src, err := assets.Script(rest)
		if err != nil {
			return nil, false
		}
		return NewScriptScreen(name, src, script.Options{Fonts: deps.Fonts, Logger: deps.Logger}), true
	}
	return nil, false
}

// pickFont prefers the Go font for the showcase, then anything available.
func pickFont(fonts map[string]*gfx.Font) *gfx.Font {
	if f, ok := fonts["go"]; ok {
		return f
	}
	names := make([]string, 0, len(fonts))
	for name := range fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil
	}
	return fonts[names[0]]
}

// ensureRegistered adds the runes of s the context cannot draw yet. Screens
// redraw many times; registering blindly would fill the registry.
func ensureRegistered(gc *gfx.Context, s string) {
	for _, r := range s {
		if r >= gfx.RegistrySize && gc.CharFor(r) == gfx.FallbackCode {
			gc.AddExtraCharacter(r)
		}
	}
}

// drawStatus shows the last error in a banner along the bottom edge.
func drawStatus(gc *gfx.Context, st state.State) {
	if st.Err == "" {
		return
	}
	w, h := gc.Width(), gc.Height()
	gc.FillRect(0, h-20, w, 20, gfx.RGB(0xC0, 0, 0))
	msg := st.Err
	if limit := (w - 8) / 6; len(msg) > limit && limit > 3 {
		msg = msg[:limit-3] + "..."
	}
	render.DrawText(gc, msg, image.Rect(4, h-20, w-4, h), h-14, render.TextStyle{Color: gfx.White})
}

func sizeLabel(gc *gfx.Context) string {
	return fmt.Sprintf("%dx%d", gc.Width(), gc.Height())
}
