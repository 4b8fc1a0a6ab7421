package web

import (
	"context"
	"errors"
	"io"
)

// ErrUnknownScreen is returned (possibly wrapped) by Preview.ShowScreen for
// names it does not know.
var ErrUnknownScreen = errors.New("unknown screen")

// Region is a framebuffer region as reported by the API.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PreviewInfo is a snapshot of the panel and the drawing context.
type PreviewInfo struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Rotation        int     `json:"rotation"`
	Screen          string  `json:"screen"`
	Phase           string  `json:"phase"`
	Message         string  `json:"message,omitempty"`
	Error           string  `json:"lastError,omitempty"`
	CursorX         int     `json:"cursorX"`
	CursorY         int     `json:"cursorY"`
	Framebuffer     *Region `json:"framebuffer"`
	ExtraCharacters int     `json:"extraCharacters"`
	Frames          int64   `json:"frames"`
	Version         uint64  `json:"version"`
}

// Preview is what the API needs from the running application.
type Preview interface {
	Info() PreviewInfo
	EncodePNG(w io.Writer, scale int) error
	Screens() []string
	ShowScreen(ctx context.Context, name string) error
	RunScript(ctx context.Context, source string) error
}

type APIV1Deps struct {
	Preview Preview
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Preview == nil {
		out.Preview = NoopPreview{Err: errors.New("preview not configured")}
	}
	return out
}

type NoopPreview struct{ Err error }

func (p NoopPreview) Info() PreviewInfo { return PreviewInfo{} }

func (p NoopPreview) EncodePNG(io.Writer, int) error { return p.err() }

func (p NoopPreview) Screens() []string { return nil }

func (p NoopPreview) ShowScreen(context.Context, string) error { return p.err() }

func (p NoopPreview) RunScript(context.Context, string) error { return p.err() }

func (p NoopPreview) err() error {
	if p.Err != nil {
		return p.Err
	}
	return errors.New("preview not configured")
}
