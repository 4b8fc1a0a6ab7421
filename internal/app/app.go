package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/tftgfx/internal/app/screens"
	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/script"
	"github.com/rook-computer/tftgfx/internal/state"
	"github.com/rook-computer/tftgfx/internal/web"
)

// Rotator is implemented by panels that support quarter-turn rotation.
type Rotator interface {
	Rotation() int
}

type App struct {
	Store  *state.Store
	Render *render.PanelRenderer
	Web    web.Server
	Fonts  map[string]*gfx.Font
	Logger Logger
	Debug  bool
	// Script, when set, replaces the initial screen once it is shown.
	Script string

	mu            sync.Mutex
	ctx           context.Context
	currentName   string
	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer *render.PanelRenderer, webServer web.Server) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Logger: NoopLogger{}, exitCh: make(chan error, 1), ctx: context.Background()}
}

// Exit requests the app to stop running.
// Any screen or input watcher can call this to end Start.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) screenDeps() screens.Deps {
	return screens.Deps{Fonts: app.Fonts, Logger: app.Logger}
}

// Start draws the initial screen and runs the render loop and the preview
// server until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context, initial string) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	app.mu.Lock()
	app.ctx = ctx
	app.mu.Unlock()

	if app.Render == nil {
		return errors.New("no renderer")
	}
	app.Render.Logger = app.Logger
	app.Render.Debug = app.Debug
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if err := app.showInitial(ctx, initial); err != nil {
		return err
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	// Force an immediate first frame so one-shot runs see it.
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

func (app *App) showInitial(ctx context.Context, initial string) error {
	if err := app.ShowScreen(ctx, initial); err != nil {
		return err
	}
	app.Store.SetPhase(state.READY)
	if app.Script != "" {
		if err := app.RunScript(ctx, app.Script); err != nil {
			app.Logger.Errorf("script", "startup script: %v", err)
		}
	}
	return nil
}

// RenderOnce draws a single frame of the initial screen (or Script) without
// the render loop or the preview server. The renderer stays started until
// Stop, so the frame can still be encoded.
func (app *App) RenderOnce(ctx context.Context, initial string) error {
	app.mu.Lock()
	app.ctx = ctx
	app.mu.Unlock()

	if app.Render == nil {
		return errors.New("no renderer")
	}
	app.Render.Logger = app.Logger
	app.Render.Debug = app.Debug
	if err := app.Render.Start(ctx); err != nil {
		return err
	}
	if err := app.showInitial(ctx, initial); err != nil {
		return err
	}
	app.Render.RedrawWithState(app.Store.Snapshot())
	if s := app.Store.Snapshot(); s.Err != "" {
		return errors.New(s.Err)
	}
	return nil
}

func (app *App) setScreen(name string, screen render.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	// The render loop may draw as soon as the screen is published.
	if err := screen.Start(app.ctx); err != nil {
		return fmt.Errorf("start screen %s: %w", name, err)
	}
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.currentName = name
	app.Render.SetScreen(screen)
	return nil
}

// ShowScreen switches to a named screen from screens.Names.
func (app *App) ShowScreen(ctx context.Context, name string) error {
	screen, ok := screens.New(name, app.screenDeps())
	if !ok {
		return fmt.Errorf("show %q: %w", name, web.ErrUnknownScreen)
	}
	if err := app.setScreen(name, screen); err != nil {
		return err
	}
	app.Logger.Infof("app", "screen %s", name)
	app.Store.SetScreen(name)
	return nil
}

// RunScript replaces the current screen with source and draws it once
// right away, so the caller gets the script's own error.
func (app *App) RunScript(ctx context.Context, source string) error {
	screen := screens.NewScriptScreen("script", source, script.Options{Fonts: app.Fonts, Logger: app.Logger})
	if err := app.setScreen("script", screen); err != nil {
		return err
	}
	app.Store.SetScreen("script")
	app.Store.SetPhase(state.SCRIPT)
	app.Render.RedrawWithState(app.Store.Snapshot())

	err := screen.Err()
	app.Store.SetError(err)
	if err == nil {
		app.Store.SetPhase(state.READY)
	}
	return err
}

func (app *App) Screens() []string { return screens.Names() }

func (app *App) EncodePNG(w io.Writer, scale int) error {
	return app.Render.EncodePNG(w, scale)
}

// Info reports the panel and the context as the last frame left them.
func (app *App) Info() web.PreviewInfo {
	snap := app.Store.Snapshot()
	info := web.PreviewInfo{
		Screen:  snap.Screen,
		Phase:   snap.Phase.String(),
		Message: snap.Message,
		Error:   snap.Err,
		Frames:  app.Render.Frames(),
		Version: snap.Version,
	}
	app.Render.Inspect(func(gc *gfx.Context) {
		info.Width, info.Height = gc.Width(), gc.Height()
		info.CursorX, info.CursorY = gc.Cursor()
		info.ExtraCharacters = gc.Registry().Len()
		if r, ok := gc.Driver().(Rotator); ok {
			info.Rotation = r.Rotation()
		}
		if region, ok := gc.Framebuffer(); ok {
			info.Framebuffer = &web.Region{X: region.X, Y: region.Y, Width: region.Width, Height: region.Height}
		}
	})
	return info
}

func (app *App) Stop() error {
	return app.Render.Stop()
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
