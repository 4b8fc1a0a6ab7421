package gfx

import (
	"fmt"
	"sort"
)

type point struct{ x, y int }

type bitmapWrite struct {
	x, y, w, h int
	pix        []byte
}

// recordingDriver keeps the last color written to every pixel and the order
// of writes, without clipping.
type recordingDriver struct {
	w, h    int
	pixels  map[point]Color
	writes  []point
	bitmaps []bitmapWrite
}

func newRecordingDriver(w, h int) *recordingDriver {
	return &recordingDriver{w: w, h: h, pixels: make(map[point]Color)}
}

func (d *recordingDriver) Size() (int, int) { return d.w, d.h }

func (d *recordingDriver) WritePixel(x, y int, c Color) {
	d.pixels[point{x, y}] = c
	d.writes = append(d.writes, point{x, y})
}

func (d *recordingDriver) WriteBitmap(x, y, w, h int, pix []byte) {
	cp := make([]byte, len(pix))
	copy(cp, pix)
	d.bitmaps = append(d.bitmaps, bitmapWrite{x, y, w, h, cp})
}

func (d *recordingDriver) reset() {
	d.pixels = make(map[point]Color)
	d.writes = nil
	d.bitmaps = nil
}

func (d *recordingDriver) set() map[point]bool {
	out := make(map[point]bool, len(d.pixels))
	for p := range d.pixels {
		out[p] = true
	}
	return out
}

func (d *recordingDriver) has(x, y int) bool {
	_, ok := d.pixels[point{x, y}]
	return ok
}

func (d *recordingDriver) colorAt(x, y int) (Color, bool) {
	c, ok := d.pixels[point{x, y}]
	return c, ok
}

func sameSet(a, b map[point]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}

func sameImage(a, b map[point]Color) bool {
	if len(a) != len(b) {
		return false
	}
	for p, c := range a {
		if o, ok := b[p]; !ok || !o.Equal(c) {
			return false
		}
	}
	return true
}

func describe(set map[point]bool) string {
	pts := make([]point, 0, len(set))
	for p := range set {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].y != pts[j].y {
			return pts[i].y < pts[j].y
		}
		return pts[i].x < pts[j].x
	})
	return fmt.Sprint(pts)
}

type countingAccel struct {
	fills, copies int
	ByteLoop
}

func (a *countingAccel) Fill(dst []byte, value byte) {
	a.fills++
	a.ByteLoop.Fill(dst, value)
}

func (a *countingAccel) Copy(dst, src []byte) {
	a.copies++
	a.ByteLoop.Copy(dst, src)
}

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.infos = append(l.infos, component+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.infos = append(l.infos, component+": "+fmt.Sprintf(format, args...))
}
