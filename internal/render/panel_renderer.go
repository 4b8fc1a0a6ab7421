package render

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/state"
)

// PanelRenderer owns the drawing context for one panel. Every use of the
// context goes through its lock, so screens, scripts and the preview server
// never draw at the same time.
type PanelRenderer struct {
	mu      sync.Mutex
	panel   Panel
	gc      *gfx.Context
	current Screen
	drawn   bool
	version uint64
	closed  bool

	running atomic.Bool
	frames  atomic.Int64

	Logger gfx.Logger
	Debug  bool
}

func NewPanelRenderer(panel Panel, logger gfx.Logger, opts ...gfx.Option) *PanelRenderer {
	opts = append([]gfx.Option{gfx.WithLogger(logger)}, opts...)
	return &PanelRenderer{panel: panel, gc: gfx.New(panel, opts...), Logger: logger}
}

func (r *PanelRenderer) Start(ctx context.Context) error {
	if r.panel == nil {
		return errors.New("no panel")
	}
	if r.Logger != nil {
		w, h := r.panel.Size()
		r.Logger.Infof("render", "panel ready, size=%dx%d", w, h)
	}
	r.running.Store(true)
	return nil
}

// Stop ends drawing and closes the panel. Calling it again does nothing.
func (r *PanelRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.panel == nil {
		return nil
	}
	r.closed = true
	return r.panel.Close()
}

// SetScreen sets the screen drawn on the next frame.
func (r *PanelRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.drawn = false
	r.mu.Unlock()
}

// RedrawWithState draws the current screen from a clean context.
func (r *PanelRenderer) RedrawWithState(snap state.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redrawLocked(snap)
}

func (r *PanelRenderer) redrawLocked(snap state.State) {
	if !r.running.Load() || r.current == nil {
		return
	}
	r.gc.Reset()
	r.gc.SetClearColor(Background)
	r.gc.ClearScreen()
	r.current.Draw(r.gc, snap)
	if err := r.panel.Present(); err != nil && r.Logger != nil {
		r.Logger.Errorf("render", "present failed: %v", err)
	}
	r.version = snap.Version
	r.drawn = true
	r.frames.Add(1)
	if r.Debug && r.Logger != nil {
		r.Logger.Infof("render", "redraw done, phase=%s version=%d", snap.Phase, snap.Version)
	}
}

// RunLoop polls the store at ~30 FPS and redraws whenever the state or the
// screen changed since the last frame.
func (r *PanelRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			r.mu.Lock()
			if !r.drawn || snap.Version != r.version {
				r.redrawLocked(snap)
			}
			r.mu.Unlock()
			if r.Debug && r.Logger != nil && time.Since(lastLog) > time.Second {
				r.Logger.Infof("render", "heartbeat, frames=%d", r.frames.Load())
				lastLog = time.Now()
			}
		}
	}
}

// Do runs fn with exclusive use of the context, then presents the panel.
func (r *PanelRenderer) Do(fn func(gc *gfx.Context)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.gc)
	return r.panel.Present()
}

// Inspect runs fn with exclusive use of the context without presenting.
func (r *PanelRenderer) Inspect(fn func(gc *gfx.Context)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.gc)
}

// EncodePNG writes what the panel currently shows.
func (r *PanelRenderer) EncodePNG(w io.Writer, scale int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.panel.EncodePNG(w, scale)
}

// Frames counts completed redraws.
func (r *PanelRenderer) Frames() int64 { return r.frames.Load() }
