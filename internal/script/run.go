package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rook-computer/tftgfx/internal/gfx"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a script that does not finish on its own.
const DefaultTimeout = 5 * time.Second

type Options struct {
	Fonts   map[string]*gfx.Font
	Timeout time.Duration
	// Logger receives Lua print output under the "script" component.
	Logger gfx.Logger
}

// Run executes source against gc in a fresh sandboxed state.
func Run(ctx context.Context, gc *gfx.Context, source string, opts Options) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L, opts.Logger)
	L.SetContext(ctx)

	if err := NewModule(gc, opts.Fonts).Register(L); err != nil {
		return fmt.Errorf("register gfx module: %w", err)
	}
	if err := L.DoString(source); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("run script: %w", ctxErr)
		}
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

func openSafeLibraries(L *lua.LState, logger gfx.Logger) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if logger != nil {
			logger.Infof("script", "%s", strings.Join(parts, "\t"))
		}
		return 0
	}))
}
