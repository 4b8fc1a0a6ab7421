package gfx

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff8000", RGB(0xFF, 0x80, 0x00), false},
		{"102030", RGB(0x10, 0x20, 0x30), false},
		{"#0f0", RGB(0, 0xFF, 0), false},
		{"#FFFFFF", White, false},
		{"nope", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorConversions(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if got := c.String(); got != "#123456" {
		t.Errorf("String = %q", got)
	}
	if got := ColorFrom(color.RGBA{0x12, 0x34, 0x56, 0xFF}); !got.Equal(c) {
		t.Errorf("ColorFrom(RGBA) = %v, want %v", got, c)
	}
	if got := ColorFrom(c); got != c {
		t.Errorf("ColorFrom(Color) = %v", got)
	}
	if _, _, _, a := c.RGBA(); a != 0xFFFF {
		t.Errorf("alpha = %#x, want opaque", a)
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nrgba.R != 0x12 || nrgba.G != 0x34 || nrgba.B != 0x56 {
		t.Errorf("NRGBA = %v", nrgba)
	}
}

func TestBlend(t *testing.T) {
	a, b := RGB(0xFF, 0, 0), RGB(0, 0, 0xFF)
	if got := a.Blend(b, 0); !got.Equal(a) {
		t.Errorf("t=0: %v", got)
	}
	if got := a.Blend(b, 1.5); !got.Equal(b) {
		t.Errorf("t>1: %v", got)
	}
	mid := a.Blend(b, 0.5)
	if mid.Equal(a) || mid.Equal(b) || mid.R == 0 || mid.B == 0 {
		t.Errorf("t=0.5: %v", mid)
	}
	if got := Black.Blend(Black, 0.3); !got.Equal(Black) {
		t.Errorf("black blend = %v", got)
	}
}
