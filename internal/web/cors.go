package web

import "net/http"

// The preview API only reads frames and accepts JSON or Lua bodies.
const (
	corsMethods = "GET,POST,OPTIONS"
	corsHeaders = "Content-Type"
	corsExposed = "Content-Length"
)

// WithDevCORS lets a UI served from another origin (a dev server on
// localhost) call the preview API. Only used in DevMode.
func WithDevCORS(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposed)
		}

		// Preflights never reach the API handlers.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
