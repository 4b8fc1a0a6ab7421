//go:build !linux || !cgo

package display

import (
	"errors"

	"github.com/rook-computer/tftgfx/internal/gfx"
)

// FBDev is only available on linux.
type FBDev struct {
	*Canvas
}

func OpenFBDev(path string, width, height int, logger gfx.Logger) (*FBDev, error) {
	return nil, errors.New("framebuffer output is only supported on linux")
}

func (f *FBDev) Present() error { return nil }
func (f *FBDev) Close() error   { return nil }
