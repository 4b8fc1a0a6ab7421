package gfx

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color as sent to the panel. There is no alpha.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0x00, 0x00, 0x00}
	White = Color{0xFF, 0xFF, 0xFF}
)

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Equal compares component-wise.
func (c Color) Equal(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B
}

// RGBA implements color.Color; the result is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// ColorFrom converts any color.Color, dropping alpha after premultiplication.
func ColorFrom(c color.Color) Color {
	if own, ok := c.(Color); ok {
		return own
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// ParseHex parses "#rrggbb" (or "rrggbb", or the three-digit forms).
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend interpolates from c to o in CIE L*a*b*; t is clamped to [0, 1].
func (c Color) Blend(o Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	r, g, b := c.colorful().BlendLab(o.colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
