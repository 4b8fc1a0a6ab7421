package screens

import (
	"context"
	"sync"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/script"
	"github.com/rook-computer/tftgfx/internal/state"
)

// ScriptScreen reruns a Lua script on every redraw. Scripts are expected to
// draw the same frame each time they run.
type ScriptScreen struct {
	Name   string
	source string
	opts   script.Options

	mu  sync.Mutex
	err error
	ctx context.Context
}

func NewScriptScreen(name, source string, opts script.Options) *ScriptScreen {
	return &ScriptScreen{Name: name, source: source, opts: opts, ctx: context.Background()}
}

// Start scopes later runs to ctx.
func (s *ScriptScreen) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	return nil
}

func (s *ScriptScreen) Stop() error { return nil }

func (s *ScriptScreen) Draw(gc *gfx.Context, st state.State) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	err := script.Run(ctx, gc, s.source, s.opts)
	if err != nil && s.opts.Logger != nil {
		s.opts.Logger.Errorf("script", "%s: %v", s.Name, err)
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	drawStatus(gc, st)
}

// Err is the result of the most recent run.
func (s *ScriptScreen) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
