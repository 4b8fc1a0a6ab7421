//go:build linux

package display

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// SetGraphicsMode switches the active console to graphics mode so the text
// cursor and kernel messages stop drawing over the framebuffer.
func SetGraphicsMode() error { return setConsoleMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode puts the console back into text mode.
func RestoreTextMode() error { return setConsoleMode(kdText, "KD_TEXT") }

func setConsoleMode(mode int, name string) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%s failed: unknown error", name)
}
