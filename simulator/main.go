package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/tftgfx/internal/app"
	"github.com/rook-computer/tftgfx/internal/display"
	"github.com/rook-computer/tftgfx/internal/fontconv"
	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/render"
	"github.com/rook-computer/tftgfx/internal/state"
	"github.com/rook-computer/tftgfx/internal/system"
	"github.com/rook-computer/tftgfx/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	width := flag.Int("width", display.NativeWidth, "simulated native panel width")
	height := flag.Int("height", display.NativeHeight, "simulated native panel height")
	rotation := flag.Int("rotation", 0, "initial rotation in quarter turns")
	screen := flag.String("screen", "splash", "initial screen")
	flag.Parse()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	panel := NewSimPanel(*width, *height)
	panel.SetRotation(*rotation)

	store := state.NewStore()
	a := app.New(store, render.NewPanelRenderer(panel, app.NoopLogger{}), nil)
	a.Fonts = map[string]*gfx.Font{"basic": fontconv.Basic()}
	if goFont, err := fontconv.GoRegular(16, fontconv.DefaultOptions()); err == nil {
		a.Fonts["go"] = goFont
	}

	control := NewSimControl(a, panel, *screen, *rotation)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	mux := web.NewDefaultMux(web.APIV1Config{Deps: web.APIV1Deps{Preview: a}})
	registerSimEndpoints(mux, control)
	server.Handler = mux
	a.Web = server

	url, err := system.PreviewURL(processCtx, system.InterfaceNetInfo{}, *listenAddr)
	if err != nil {
		url = "http://" + trimLeadingColon(*listenAddr) + "/"
	}
	store.UpdateNetwork(state.NetworkInfo{URL: url, URLQR: url})

	fmt.Println("tftgfx simulator listening on", *listenAddr)
	fmt.Println("Panel:", *width, "x", *height, "rotation", *rotation)
	fmt.Println("API: " + url + "api/v1/")

	if err := a.Start(processCtx, *screen); err != nil && err != context.Canceled {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func trimLeadingColon(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
