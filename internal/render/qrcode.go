package render

import (
	"fmt"
	"image"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/skip2/go-qrcode"
)

// QRCodeModules returns how many modules wide the code for payload is,
// quiet zone included.
func QRCodeModules(payload string) (int, error) {
	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return 0, fmt.Errorf("encode qr code: %w", err)
	}
	return len(qrCode.Bitmap()), nil
}

// DrawQRCode draws payload with its top-left corner at (x, y), module
// pixels per module, and returns the side length in pixels. The quiet zone
// is painted in bg. An empty payload draws nothing.
func DrawQRCode(gc *gfx.Context, x, y int, payload string, module int, fg, bg gfx.Color) (int, error) {
	if payload == "" {
		return 0, nil
	}
	if module < 1 {
		module = 1
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return 0, fmt.Errorf("encode qr code: %w", err)
	}

	bits := qrCode.Bitmap()
	side := len(bits) * module
	gc.FillRect(x, y, side, side, bg)
	for row, line := range bits {
		for col, dark := range line {
			if dark {
				gc.FillRect(x+col*module, y+row*module, module, module, fg)
			}
		}
	}
	return side, nil
}

// DrawQRCodeInRect draws the largest whole-module code that fits rect,
// centered, and returns the area it covers. Codes that cannot fit at one
// pixel per module are skipped.
func DrawQRCodeInRect(gc *gfx.Context, rect image.Rectangle, payload string, fg, bg gfx.Color) (image.Rectangle, error) {
	if payload == "" {
		return image.Rectangle{}, nil
	}
	n, err := QRCodeModules(payload)
	if err != nil {
		return image.Rectangle{}, err
	}
	avail := rect.Dx()
	if rect.Dy() < avail {
		avail = rect.Dy()
	}
	module := avail / n
	if module < 1 {
		return image.Rectangle{}, nil
	}
	side := n * module
	x := rect.Min.X + (rect.Dx()-side)/2
	y := rect.Min.Y + (rect.Dy()-side)/2
	if _, err := DrawQRCode(gc, x, y, payload, module, fg, bg); err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(x, y, x+side, y+side), nil
}
