// Package fontconv rasterizes scalable or bitmap fonts into the packed
// 1-bit glyph fonts gfx draws with.
package fontconv

import (
	"fmt"
	"image"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/tftgfx/internal/gfx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Options selects the code range to convert. Codes from 128 up are looked
// up in Registry, so extended characters registered on a context get glyphs
// in the same slots.
type Options struct {
	First, Last byte
	Registry    *gfx.Registry
	// Threshold is the minimum coverage (0-255) for a pixel to be set.
	Threshold uint8
}

// DefaultOptions covers printable ASCII.
func DefaultOptions() Options {
	return Options{First: 0x20, Last: 0x7E, Threshold: 0x80}
}

// FromFace renders every code in the range through face.
func FromFace(face font.Face, opts Options) (*gfx.Font, error) {
	if opts.Last < opts.First {
		return nil, fmt.Errorf("empty code range %d..%d", opts.First, opts.Last)
	}
	if opts.Threshold == 0 {
		opts.Threshold = 0x80
	}

	f := &gfx.Font{
		First:    opts.First,
		Last:     opts.Last,
		Glyphs:   make([]gfx.Glyph, 0, int(opts.Last)-int(opts.First)+1),
		YAdvance: clampU8(face.Metrics().Height.Ceil()),
	}
	for code := int(opts.First); code <= int(opts.Last); code++ {
		r, ok := runeFor(byte(code), opts.Registry)
		if !ok {
			f.Glyphs = append(f.Glyphs, gfx.Glyph{BitmapOffset: len(f.Bitmap)})
			continue
		}
		g, bits := rasterize(face, r, opts.Threshold)
		g.BitmapOffset = len(f.Bitmap)
		f.Bitmap = append(f.Bitmap, bits...)
		f.Glyphs = append(f.Glyphs, g)
	}
	return f, nil
}

func runeFor(code byte, reg *gfx.Registry) (rune, bool) {
	if code < gfx.RegistrySize {
		return rune(code), true
	}
	if reg == nil {
		return 0, false
	}
	return reg.Lookup(code)
}

// rasterize packs one glyph MSB first, rows running on without padding.
func rasterize(face font.Face, r rune, threshold uint8) (gfx.Glyph, []byte) {
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return gfx.Glyph{}, nil
	}
	g := gfx.Glyph{XAdvance: clampU8(advance.Round())}

	full := dr
	dr = trim(full, mask, maskp, threshold)
	if dr.Empty() {
		return g, nil
	}
	w, h := dr.Dx(), dr.Dy()
	if w > math.MaxUint8 || h > math.MaxUint8 {
		return g, nil
	}
	g.Width, g.Height = uint8(w), uint8(h)
	g.XOffset, g.YOffset = clampI8(dr.Min.X), clampI8(dr.Min.Y)

	var out []byte
	var cur byte
	n := 0
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			cur <<= 1
			if covered(mask, maskp, full, x, y, threshold) {
				cur |= 1
			}
			n++
			if n == 8 {
				out = append(out, cur)
				cur, n = 0, 0
			}
		}
	}
	if n > 0 {
		out = append(out, cur<<(8-n))
	}
	return g, out
}

// trim shrinks dr to the covered pixels.
func trim(dr image.Rectangle, mask image.Image, maskp image.Point, threshold uint8) image.Rectangle {
	minX, minY, maxX, maxY := dr.Max.X, dr.Max.Y, dr.Min.X, dr.Min.Y
	found := false
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			if !covered(mask, maskp, dr, x, y, threshold) {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x+1 > maxX {
				maxX = x + 1
			}
			if y+1 > maxY {
				maxY = y + 1
			}
		}
	}
	if !found {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: image.Pt(minX, minY), Max: image.Pt(maxX, maxY)}
}

// covered tests the mask pixel that lands on (x, y) relative to the dot;
// dr is the untrimmed glyph rectangle maskp belongs to.
func covered(mask image.Image, maskp image.Point, dr image.Rectangle, x, y int, threshold uint8) bool {
	_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
	return uint8(a>>8) >= threshold
}

func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

func clampI8(v int) int8 {
	if v < math.MinInt8 {
		return math.MinInt8
	}
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	return int8(v)
}

// FromTrueType parses a TrueType font with freetype and renders it at size
// points (72 DPI, so points are pixels).
func FromTrueType(data []byte, size float64, opts Options) (*gfx.Font, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	face := truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	return FromFace(face, opts)
}

// FromOpenType parses a TrueType or OpenType font with sfnt.
func FromOpenType(data []byte, size float64, opts Options) (*gfx.Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse opentype: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()
	return FromFace(face, opts)
}

// Basic converts the 7x13 fixed font bundled with x/image.
func Basic() *gfx.Font {
	f, err := FromFace(basicfont.Face7x13, DefaultOptions())
	if err != nil {
		panic(err)
	}
	return f
}

// GoRegular renders the Go font at size pixels.
func GoRegular(size float64, opts Options) (*gfx.Font, error) {
	return FromTrueType(goregular.TTF, size, opts)
}
