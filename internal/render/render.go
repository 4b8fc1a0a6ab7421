package render

import (
	"context"
	"io"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/state"
)

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(gc *gfx.Context, s state.State)
}

// Panel is a driver whose pixels may only become visible on Present, such
// as a framebuffer or terminal mirror of an in-memory canvas.
type Panel interface {
	gfx.Driver
	Present() error
	Close() error
	EncodePNG(w io.Writer, scale int) error
}
