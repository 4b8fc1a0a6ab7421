//go:build linux && cgo

package display

import (
	"fmt"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/tftgfx/internal/gfx"
)

// FBDev shows a Canvas on a Linux framebuffer device. Drawing goes to the
// canvas; Present scales it onto the device.
type FBDev struct {
	*Canvas
	dev      *fb.Device
	logger   gfx.Logger
	graphics bool
}

// OpenFBDev opens the device at path (usually /dev/fb0) behind a canvas of
// the given native size, and switches the console to graphics mode.
func OpenFBDev(path string, width, height int, logger gfx.Logger) (*FBDev, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	f := &FBDev{Canvas: NewCanvas(width, height), dev: dev, logger: logger}
	if f.logger != nil {
		b := dev.Bounds()
		f.logger.Infof("fb", "framebuffer open, bounds=%dx%d", b.Dx(), b.Dy())
	}
	if err := SetGraphicsMode(); err != nil {
		if f.logger != nil {
			f.logger.Errorf("tty", "KD_GRAPHICS failed: %v", err)
		}
	} else {
		f.graphics = true
	}
	return f, nil
}

// Present copies the canvas to the device, scaled to its full size.
func (f *FBDev) Present() error {
	if f.dev == nil {
		return fmt.Errorf("framebuffer closed")
	}
	f.Canvas.Blit(f.dev)
	return nil
}

func (f *FBDev) Close() error {
	if f.graphics {
		if err := RestoreTextMode(); err != nil && f.logger != nil {
			f.logger.Errorf("tty", "KD_TEXT failed: %v", err)
		}
		f.graphics = false
	}
	if f.dev == nil {
		return nil
	}
	f.dev.Close()
	f.dev = nil
	return nil
}
