//go:build linux

package display

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"golang.org/x/sys/unix"
)

// Linux input-event-codes.h
const (
	evKey = 0x01

	KeyEsc = 1
	KeyQ   = 16
	KeyF4  = 62
)

// eventLayout describes struct input_event on this arch: a timeval followed
// by u16 type, u16 code and s32 value.
type eventLayout struct {
	tvSize, size int
}

func nativeEventLayout() eventLayout {
	tv := binary.Size(unix.Timeval{})
	if tv <= 0 {
		return eventLayout{tvSize: 16, size: 24}
	}
	return eventLayout{tvSize: tv, size: tv + 8}
}

// pressed reports whether buf holds a key-down event for one of codes.
func (l eventLayout) pressed(buf []byte, codes map[uint16]bool) bool {
	for off := 0; off+l.size <= len(buf); off += l.size {
		rec := buf[off : off+l.size]
		typ := binary.LittleEndian.Uint16(rec[l.tvSize : l.tvSize+2])
		code := binary.LittleEndian.Uint16(rec[l.tvSize+2 : l.tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[l.tvSize+4 : l.tvSize+8]))
		if typ == evKey && value == 1 && codes[code] {
			return true
		}
	}
	return false
}

// WatchKeys reads every /dev/input/event* device and calls onKey once, the
// first time one of codes is pressed. Missing devices are logged and
// otherwise ignored; the panel keeps running without a way out but ctx.
func WatchKeys(ctx context.Context, logger gfx.Logger, onKey func(), codes ...uint16) {
	if onKey == nil || len(codes) == 0 {
		return
	}
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices found")
		}
		return
	}

	want := make(map[uint16]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	layout := nativeEventLayout()

	var once sync.Once
	fire := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "exit key pressed")
			}
			onKey()
		})
	}

	for _, path := range paths {
		go watchDevice(ctx, path, layout, want, fire)
	}
}

func watchDevice(ctx context.Context, path string, layout eventLayout, want map[uint16]bool, fire func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 64*layout.size)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if layout.pressed(buf[:n], want) {
			fire()
			return
		}
	}
}
