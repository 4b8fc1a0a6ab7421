package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/tftgfx/internal/app"
	"github.com/rook-computer/tftgfx/internal/display"
	"github.com/rook-computer/tftgfx/internal/gfx"
)

type SimFaults struct {
	// PresentFail makes every Present return an error.
	PresentFail bool `json:"presentFail"`
	// CloseFail makes Close return an error.
	CloseFail bool `json:"closeFail"`
}

// SimPanel is a canvas whose Present and Close can be told to fail.
type SimPanel struct {
	*display.Canvas

	mu       sync.RWMutex
	faults   SimFaults
	presents atomic.Int64
}

func NewSimPanel(width, height int) *SimPanel {
	return &SimPanel{Canvas: display.NewCanvas(width, height)}
}

func (p *SimPanel) Faults() SimFaults {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.faults
}

func (p *SimPanel) SetFaults(v SimFaults) {
	p.mu.Lock()
	p.faults = v
	p.mu.Unlock()
}

func (p *SimPanel) Present() error {
	if p.Faults().PresentFail {
		return fmt.Errorf("simulated present failure")
	}
	p.presents.Add(1)
	return nil
}

func (p *SimPanel) Close() error {
	if p.Faults().CloseFail {
		return fmt.Errorf("simulated close failure")
	}
	return nil
}

// Presents counts successful presents.
func (p *SimPanel) Presents() int64 { return p.presents.Load() }

type SimControl struct {
	app             *app.App
	panel           *SimPanel
	startupScreen   string
	startupRotation int
}

func NewSimControl(a *app.App, panel *SimPanel, startupScreen string, startupRotation int) *SimControl {
	startupScreen = strings.TrimSpace(startupScreen)
	if startupScreen == "" {
		startupScreen = "splash"
	}
	return &SimControl{app: a, panel: panel, startupScreen: startupScreen, startupRotation: startupRotation}
}

// SetRotation turns the simulated panel and forces a redraw.
func (c *SimControl) SetRotation(r int) {
	c.app.Render.Inspect(func(*gfx.Context) {
		c.panel.SetRotation(r)
	})
	c.app.Store.Touch()
}

func (c *SimControl) SetMessage(msg string) {
	c.app.Store.SetMessage(msg)
}

// Reset clears faults and the message and goes back to the startup screen
// and rotation.
func (c *SimControl) Reset(ctx context.Context) error {
	c.panel.SetFaults(SimFaults{})
	c.app.Store.SetMessage("")
	c.SetRotation(c.startupRotation)
	return c.app.ShowScreen(ctx, c.startupScreen)
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(r.Context()); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "screen": control.startupScreen})
	})

	mux.HandleFunc("/sim/rotation/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/rotation/"), "/")
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeSimError(w, http.StatusBadRequest, "rotation must be an integer")
			return
		}
		control.SetRotation(n)
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "rotation": control.panel.Rotation()})
	})

	mux.HandleFunc("/sim/message", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid json")
			return
		}
		control.SetMessage(body.Message)
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.panel.Faults())
			return
		case http.MethodPost:
			var patch struct {
				PresentFail *bool `json:"presentFail"`
				CloseFail   *bool `json:"closeFail"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.panel.Faults()
			if patch.PresentFail != nil {
				current.PresentFail = *patch.PresentFail
			}
			if patch.CloseFail != nil {
				current.CloseFail = *patch.CloseFail
			}
			control.panel.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
			return
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
