package gfx

import (
	"bytes"
	"math"
	"testing"
)

func TestCreateFramebufferCapacity(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		ok   bool
	}{
		{"exactly at capacity", 200, 200, true},
		{"just over capacity", 40001, 1, false},
		{"well over capacity", 320, 480, false},
		{"small", 10, 4, true},
		{"zero width", 0, 10, false},
		{"negative height", 10, -1, false},
		{"width wraps the product", math.MaxInt/2 + 1, 4, false},
		{"height wraps the product", 4, math.MaxInt/2 + 1, false},
		{"both huge", math.MaxInt, math.MaxInt, false},
		{"exact at capacity, one row", 40000, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newRecordingDriver(320, 480)
			ctx := New(d)

			if got := ctx.CreateFramebuffer(5, 6, tt.w, tt.h); got != tt.ok {
				t.Fatalf("CreateFramebuffer = %v, want %v", got, tt.ok)
			}
			region, active := ctx.Framebuffer()
			if active != tt.ok {
				t.Fatalf("region active = %v, want %v", active, tt.ok)
			}
			if !tt.ok {
				if ctx.Flush() {
					t.Errorf("Flush reported a region after a refused create")
				}
				if len(d.bitmaps) != 0 {
					t.Errorf("Flush wrote %d bitmaps, want none", len(d.bitmaps))
				}
				return
			}
			if len(region.Bytes()) != tt.w*tt.h*3 {
				t.Errorf("buffer size = %d, want %d", len(region.Bytes()), tt.w*tt.h*3)
			}
		})
	}
}

func TestCreateFramebufferRefusalKeepsRegion(t *testing.T) {
	logger := &recordingLogger{}
	ctx := New(newRecordingDriver(100, 100), WithLogger(logger))
	if !ctx.CreateFramebuffer(1, 2, 3, 4) {
		t.Fatal("CreateFramebuffer(3x4) failed")
	}
	if ctx.CreateFramebuffer(0, 0, 400, 400) {
		t.Fatal("CreateFramebuffer(400x400) succeeded")
	}
	region, ok := ctx.Framebuffer()
	if !ok || region.X != 1 || region.Y != 2 || region.Width != 3 || region.Height != 4 {
		t.Errorf("region = %+v (active %v), want the 3x4 region at (1, 2)", region, ok)
	}
	if len(logger.infos) != 1 {
		t.Errorf("logged %d messages, want 1: %v", len(logger.infos), logger.infos)
	}
}

func TestPixelRouting(t *testing.T) {
	d := newRecordingDriver(64, 64)
	ctx := New(d)
	if !ctx.CreateFramebuffer(10, 10, 4, 4) {
		t.Fatal("CreateFramebuffer failed")
	}

	ctx.SetPixel(11, 12, red)
	ctx.SetPixel(0, 0, red)
	ctx.SetPixel(14, 10, red)
	ctx.SetPixel(10, 9, red)

	if d.has(11, 12) {
		t.Errorf("pixel inside the region reached the driver")
	}
	for _, p := range []point{{0, 0}, {14, 10}, {10, 9}} {
		if !d.has(p.x, p.y) {
			t.Errorf("pixel %v outside the region did not reach the driver", p)
		}
	}

	region, _ := ctx.Framebuffer()
	off := ((12-10)*4 + (11 - 10)) * 3
	if got := region.Bytes()[off : off+3]; !bytes.Equal(got, []byte{0xFF, 0, 0}) {
		t.Errorf("buffer at %d = %v, want red", off, got)
	}

	if !ctx.Flush() {
		t.Fatal("Flush reported no region")
	}
	if len(d.bitmaps) != 1 {
		t.Fatalf("Flush wrote %d bitmaps, want 1", len(d.bitmaps))
	}
	bm := d.bitmaps[0]
	if bm.x != 10 || bm.y != 10 || bm.w != 4 || bm.h != 4 || len(bm.pix) != 48 {
		t.Errorf("bitmap = (%d, %d, %dx%d, %d bytes), want (10, 10, 4x4, 48 bytes)", bm.x, bm.y, bm.w, bm.h, len(bm.pix))
	}

	ctx.DestroyFramebuffer()
	ctx.SetPixel(11, 12, red)
	if !d.has(11, 12) {
		t.Errorf("pixel still buffered after DestroyFramebuffer")
	}
	if ctx.Flush() {
		t.Errorf("Flush reported a region after DestroyFramebuffer")
	}
	ctx.DestroyFramebuffer()
}

func TestBufferedShapes(t *testing.T) {
	d := newRecordingDriver(64, 64)
	ctx := New(d)
	ctx.CreateFramebuffer(0, 0, 8, 8)
	ctx.FillFramebuffer(Black)

	// Straddles the region's right edge.
	ctx.FillRect(6, 0, 4, 1, red)

	if d.has(6, 0) || d.has(7, 0) {
		t.Errorf("in-region pixels reached the driver")
	}
	if !d.has(8, 0) || !d.has(9, 0) {
		t.Errorf("out-of-region pixels did not reach the driver")
	}
	snap := ctx.SnapshotFramebuffer()
	if !bytes.Equal(snap[18:24], []byte{0xFF, 0, 0, 0xFF, 0, 0}) {
		t.Errorf("snapshot row 0 tail = %v, want two red pixels", snap[18:24])
	}
}

func TestFillFramebuffer(t *testing.T) {
	t.Run("refused oversized region", func(t *testing.T) {
		ctx := New(newRecordingDriver(32, 32))
		if ctx.CreateFramebuffer(0, 0, math.MaxInt/2+1, 4) {
			t.Fatal("CreateFramebuffer accepted a wrapping size")
		}
		if ctx.FillFramebuffer(RGB(1, 2, 3)) {
			t.Errorf("FillFramebuffer reported a region")
		}
	})

	t.Run("gray uses one fill", func(t *testing.T) {
		accel := &countingAccel{}
		ctx := New(newRecordingDriver(32, 32), WithAccelerator(accel))
		ctx.CreateFramebuffer(0, 0, 5, 3)

		if !ctx.FillFramebuffer(RGB(0x40, 0x40, 0x40)) {
			t.Fatal("FillFramebuffer reported no region")
		}
		if accel.fills != 1 || accel.copies != 0 {
			t.Errorf("fills, copies = %d, %d, want 1, 0", accel.fills, accel.copies)
		}
		region, _ := ctx.Framebuffer()
		if !bytes.Equal(region.Bytes(), bytes.Repeat([]byte{0x40}, 45)) {
			t.Errorf("buffer = %v", region.Bytes())
		}
	})

	t.Run("color uses doubling copies", func(t *testing.T) {
		accel := &countingAccel{}
		ctx := New(newRecordingDriver(32, 32), WithAccelerator(accel))
		ctx.CreateFramebuffer(0, 0, 7, 3)

		c := RGB(1, 2, 3)
		ctx.FillFramebuffer(c)
		region, _ := ctx.Framebuffer()
		if !bytes.Equal(region.Bytes(), bytes.Repeat([]byte{1, 2, 3}, 21)) {
			t.Errorf("buffer = %v", region.Bytes())
		}
		// Prefixes of 3, 6, 12, 24 and 48 bytes are copied forward.
		if accel.copies != 5 {
			t.Errorf("copies = %d, want 5", accel.copies)
		}
	})

	t.Run("no region", func(t *testing.T) {
		ctx := New(newRecordingDriver(32, 32))
		if ctx.FillFramebuffer(red) {
			t.Errorf("FillFramebuffer without a region reported success")
		}
		if ctx.SnapshotFramebuffer() != nil {
			t.Errorf("SnapshotFramebuffer without a region returned data")
		}
	})
}
