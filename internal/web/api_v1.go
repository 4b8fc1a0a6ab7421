package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const (
	maxScriptBytes  = 64 << 10
	maxPreviewScale = 8
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type screensResponse struct {
	Screens []string `json:"screens"`
	Current string   `json:"current"`
}

type screenRequest struct {
	Name string `json:"name"`
}

func apiV1RouterWithDeps(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) { handleInfo(w, r, deps) })
	mux.HandleFunc("/screenshot.png", func(w http.ResponseWriter, r *http.Request) { handleScreenshot(w, r, deps) })
	mux.HandleFunc("/screens", func(w http.ResponseWriter, r *http.Request) { handleScreens(w, r, deps) })
	mux.HandleFunc("/screen", func(w http.ResponseWriter, r *http.Request) { handleScreen(w, r, deps) })
	mux.HandleFunc("/script", func(w http.ResponseWriter, r *http.Request) { handleScript(w, r, deps) })
	return mux
}

func handleInfo(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Preview.Info())
}

func handleScreenshot(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	scale := 1
	if raw := r.URL.Query().Get("scale"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPreviewScale {
			writeAPIError(w, http.StatusBadRequest, "invalid_scale", "scale must be an integer from 1 to "+strconv.Itoa(maxPreviewScale))
			return
		}
		scale = parsed
	}

	// Encode fully before writing so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := deps.Preview.EncodePNG(&buf, scale); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "screenshot_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func handleScreens(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	screens := deps.Preview.Screens()
	if screens == nil {
		screens = []string{}
	}
	writeJSON(w, http.StatusOK, screensResponse{Screens: screens, Current: deps.Preview.Info().Screen})
}

func handleScreen(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req screenRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, 4<<10))
	if err := dec.Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeAPIError(w, http.StatusBadRequest, "invalid_screen", "name is required")
		return
	}
	if err := deps.Preview.ShowScreen(r.Context(), name); err != nil {
		if errors.Is(err, ErrUnknownScreen) {
			writeAPIError(w, http.StatusNotFound, "unknown_screen", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "screen_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleScript(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if err := requireContentLength(r); err != nil {
		writeAPIError(w, http.StatusLengthRequired, "length_required", err.Error())
		return
	}
	if r.ContentLength > maxScriptBytes {
		writeAPIError(w, http.StatusRequestEntityTooLarge, "script_too_large", "script exceeds "+strconv.Itoa(maxScriptBytes)+" bytes")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, r.ContentLength))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "read_failed", err.Error())
		return
	}
	if err := deps.Preview.RunScript(r.Context(), string(body)); err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, "script_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func requireContentLength(r *http.Request) error {
	// Reject chunked/unknown length so the body size is known up front.
	if r.ContentLength <= 0 {
		return errLengthRequired
	}
	return nil
}

var errLengthRequired = &apiSimpleError{Message: "Content-Length header is required"}

type apiSimpleError struct{ Message string }

func (e *apiSimpleError) Error() string { return e.Message }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
