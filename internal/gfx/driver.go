package gfx

// Driver is the panel the context draws to. Size reports the current logical
// viewport (after any rotation the driver applies). WriteBitmap receives
// exactly w*h*3 bytes of row-major RGB.
//
// Drivers must tolerate coordinates outside the viewport; shapes are not
// clipped before they reach the driver.
type Driver interface {
	Size() (width, height int)
	WritePixel(x, y int, c Color)
	WriteBitmap(x, y, w, h int, pix []byte)
}

// NoopDriver reports a fixed size and discards everything.
type NoopDriver struct {
	Width, Height int
}

func (d NoopDriver) Size() (int, int)                     { return d.Width, d.Height }
func (d NoopDriver) WritePixel(x, y int, c Color)         {}
func (d NoopDriver) WriteBitmap(x, y, w, h int, _ []byte) {}

// Accelerator performs bulk byte fills and copies. Implementations backed by
// DMA must not return before the transfer has completed.
type Accelerator interface {
	Fill(dst []byte, value byte)
	Copy(dst, src []byte)
}

// ByteLoop is the software accelerator.
type ByteLoop struct{}

func (ByteLoop) Fill(dst []byte, value byte) {
	for i := range dst {
		dst[i] = value
	}
}

func (ByteLoop) Copy(dst, src []byte) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
}

// Logger matches the component-tagged logger used across the application.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
