//go:build !linux

package display

import (
	"context"

	"github.com/rook-computer/tftgfx/internal/gfx"
)

const (
	KeyEsc = 1
	KeyQ   = 16
	KeyF4  = 62
)

// WatchKeys needs evdev and does nothing on this platform.
func WatchKeys(ctx context.Context, logger gfx.Logger, onKey func(), codes ...uint16) {}
