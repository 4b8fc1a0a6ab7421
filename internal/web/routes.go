package web

import (
	"net/http"
	"path"

	"github.com/rook-computer/tftgfx/internal/assets"
)

type APIV1Config struct {
	Deps APIV1Deps
}

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1RouterWithDeps(cfg.Deps)))
}

// RegisterUI serves the embedded preview page.
func RegisterUI(mux *http.ServeMux) {
	mux.Handle("/", StaticUIHandler())
}

// StaticUIHandler serves the embedded web assets at '/'.
func StaticUIHandler() http.Handler {
	fileServer := http.FileServer(http.FS(assets.WebUI))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean path to avoid oddities.
		r.URL.Path = path.Clean("/" + r.URL.Path)
		fileServer.ServeHTTP(w, r)
	})
}

// NewDefaultMux builds the standard mux:
// - /api/v1/* for the API
// - / for the preview page
func NewDefaultMux(cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux)
	return mux
}
