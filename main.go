package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rook-computer/tftgfx/internal/app"
	"github.com/rook-computer/tftgfx/internal/app/screens"
	"github.com/rook-computer/tftgfx/internal/config"
	"github.com/rook-computer/tftgfx/internal/display"
	"github.com/rook-computer/tftgfx/internal/fontconv"
	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/state"
	"github.com/rook-computer/tftgfx/internal/system"
	"github.com/rook-computer/tftgfx/internal/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults, err := config.DefaultFromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	driver := flag.String("driver", defaults.Driver, "panel driver: canvas | fbdev | terminal; also configurable via "+config.EnvDriver)
	fbDevice := flag.String("fbdev", defaults.FBDevice, "framebuffer device for the fbdev driver; also configurable via "+config.EnvFBDevice)
	outPNG := flag.String("out", defaults.OutPNG, "write a PNG of the first frame and exit (canvas driver without -listen); also configurable via "+config.EnvOutPNG)
	width := flag.Int("width", defaults.Width, "native panel width; also configurable via "+config.EnvWidth)
	height := flag.Int("height", defaults.Height, "native panel height; also configurable via "+config.EnvHeight)
	rotation := flag.Int("rotation", defaults.Rotation, "panel rotation in quarter turns; also configurable via "+config.EnvRotation)
	scale := flag.Int("scale", defaults.Scale, "PNG upscale factor; also configurable via "+config.EnvScale)
	fg := flag.String("fg", defaults.Foreground.String(), "theme foreground color; also configurable via "+config.EnvForeground)
	bg := flag.String("bg", defaults.Background.String(), "theme background color; also configurable via "+config.EnvBackground)
	fontPath := flag.String("font", defaults.FontPath, "TrueType/OpenType font offered to screens and scripts as \"custom\"; also configurable via "+config.EnvFont)
	fontSize := flag.Float64("font-size", defaults.FontSize, "pixel size for converted fonts; also configurable via "+config.EnvFontSize)
	scriptPath := flag.String("script", defaults.Script, "Lua script to draw instead of a screen; also configurable via "+config.EnvScript)
	screen := flag.String("screen", defaults.Screen, "initial screen ("+strings.Join(screens.Names(), ", ")+"); also configurable via "+config.EnvScreen)
	listenAddr := flag.String("listen", defaults.Server.ListenAddr, "preview server address, empty to disable; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.Server.DevMode, "enable permissive CORS on the preview server; also configurable via "+web.EnvDevMode)
	debug := flag.Bool("debug", defaults.Debug, "enable debug logging to ./tftgfx-debug.log; also configurable via "+config.EnvDebug)
	stdioLog := flag.String("stdio-log", defaults.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	flag.Parse()

	cfg := defaults
	cfg.Driver = strings.ToLower(*driver)
	cfg.FBDevice = *fbDevice
	cfg.OutPNG = *outPNG
	cfg.Width, cfg.Height = *width, *height
	cfg.Rotation = *rotation
	cfg.Scale = *scale
	cfg.FontPath = *fontPath
	cfg.FontSize = *fontSize
	cfg.Script = *scriptPath
	cfg.Screen = *screen
	cfg.Server = web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode}
	cfg.Debug = *debug
	cfg.StdioLog = *stdioLog
	if cfg.Foreground, err = gfx.ParseHex(*fg); err != nil {
		fmt.Println("-fg:", err)
		return 2
	}
	if cfg.Background, err = gfx.ParseHex(*bg); err != nil {
		fmt.Println("-bg:", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Best-effort: keep crash output when the console is in graphics mode.
	if cfg.StdioLog != "" {
		if err := redirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if cfg.Debug {
		f, err := os.OpenFile("./tftgfx-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runApp(ctx, cfg, logger); err != nil && err != context.Canceled {
		fmt.Println("error:", err)
		return 1
	}
	return 0
}

func runApp(ctx context.Context, cfg config.Config, logger app.Logger) error {
	render.Foreground = cfg.Foreground
	render.Background = cfg.Background

	fonts, err := loadFonts(cfg, logger)
	if err != nil {
		return err
	}

	var source string
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		source = string(data)
	}

	panel, watch, err := openPanel(cfg, logger)
	if err != nil {
		return err
	}
	panel.SetRotation(cfg.Rotation)

	store := state.NewStore()
	renderer := render.NewPanelRenderer(panel, logger)
	a := app.New(store, renderer, nil)
	a.Logger = logger
	a.Debug = cfg.Debug
	a.Fonts = fonts
	a.Script = source

	oneShot := cfg.Driver == config.DriverCanvas && cfg.Server.ListenAddr == ""
	if oneShot {
		defer a.Stop()
		if err := a.RenderOnce(ctx, cfg.Screen); err != nil {
			return err
		}
		return writePNG(a, cfg)
	}

	if cfg.Server.ListenAddr != "" {
		server := web.NewHTTPServer(cfg.Server)
		server.Logger = logger
		server.Handler = web.NewDefaultMux(web.APIV1Config{Deps: web.APIV1Deps{Preview: a}})
		a.Web = server
		url, err := system.PreviewURL(ctx, system.InterfaceNetInfo{}, cfg.Server.ListenAddr)
		if err != nil {
			logger.Errorf("net", "preview url: %v", err)
			url = "http://127.0.0.1" + cfg.Server.ListenAddr + "/"
		}
		store.UpdateNetwork(state.NetworkInfo{URL: url, URLQR: url})
		logger.Infof("main", "preview at %s", url)
		if cfg.Driver != config.DriverTerminal {
			fmt.Println("Preview:", url)
		}
	}
	if watch != nil {
		go watch(ctx, a)
	}

	err = a.Start(ctx, cfg.Screen)
	if cfg.OutPNG != "" {
		if perr := writePNG(a, cfg); perr != nil {
			fmt.Println("png:", perr)
		}
	}
	return err
}

// panelWatcher ends the app on user input.
type panelWatcher func(ctx context.Context, a *app.App)

type rotatablePanel interface {
	render.Panel
	SetRotation(r int)
}

func openPanel(cfg config.Config, logger app.Logger) (rotatablePanel, panelWatcher, error) {
	switch cfg.Driver {
	case config.DriverFBDev:
		p, err := display.OpenFBDev(cfg.FBDevice, cfg.Width, cfg.Height, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, func(ctx context.Context, a *app.App) {
			display.WatchKeys(ctx, logger, func() { a.Exit(nil) }, display.KeyEsc, display.KeyQ, display.KeyF4)
		}, nil
	case config.DriverTerminal:
		p, err := display.OpenTerminal(cfg.Width, cfg.Height)
		if err != nil {
			return nil, nil, err
		}
		return p, func(ctx context.Context, a *app.App) {
			if err := p.WaitForKey(ctx); err == nil {
				a.Exit(nil)
			}
		}, nil
	default:
		return display.NewCanvas(cfg.Width, cfg.Height), nil, nil
	}
}

func loadFonts(cfg config.Config, logger app.Logger) (map[string]*gfx.Font, error) {
	fonts := map[string]*gfx.Font{"basic": fontconv.Basic()}
	goFont, err := fontconv.GoRegular(cfg.FontSize, fontconv.DefaultOptions())
	if err != nil {
		logger.Errorf("font", "go font: %v", err)
	} else {
		fonts["go"] = goFont
	}
	if cfg.FontPath == "" {
		return fonts, nil
	}
	data, err := os.ReadFile(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	custom, err := fontconv.FromOpenType(data, cfg.FontSize, fontconv.DefaultOptions())
	if err != nil {
		logger.Infof("font", "opentype failed, trying truetype: %v", err)
		if custom, err = fontconv.FromTrueType(data, cfg.FontSize, fontconv.DefaultOptions()); err != nil {
			return nil, err
		}
	}
	fonts["custom"] = custom
	return fonts, nil
}

func writePNG(a *app.App, cfg config.Config) error {
	out := os.Stdout
	if cfg.OutPNG != "-" {
		if cfg.OutPNG == "" {
			return nil
		}
		f, err := os.Create(cfg.OutPNG)
		if err != nil {
			return fmt.Errorf("create %s: %w", cfg.OutPNG, err)
		}
		defer f.Close()
		out = f
	}
	return a.EncodePNG(out, cfg.Scale)
}
