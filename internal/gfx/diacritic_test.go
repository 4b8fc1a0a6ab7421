package gfx

import (
	"strings"
	"testing"
)

func TestResolveDiacritic(t *testing.T) {
	tests := []struct {
		r    rune
		base byte
		mark Diacritic
		ok   bool
	}{
		{'a', 'a', DiacriticNone, true},
		{'Z', 'Z', DiacriticNone, true},
		{'č', 'c', DiacriticCaron, true},
		{'Ř', 'R', DiacriticCaron, true},
		{'ů', 'u', DiacriticDot, true},
		{'Ý', 'Y', DiacriticAcute, true},
		{'ď', 'd', DiacriticCaron, true},
		{'ś', 's', DiacriticAcute, true},
		{'ż', 'z', DiacriticDot, true},
		{'Å', 'A', DiacriticDot, true},
		{'à', FallbackCode, DiacriticNone, false},
		{'ж', FallbackCode, DiacriticNone, false},
		{'€', FallbackCode, DiacriticNone, false},
	}
	for _, tt := range tests {
		base, mark, ok := ResolveDiacritic(tt.r)
		if base != tt.base || mark != tt.mark || ok != tt.ok {
			t.Errorf("ResolveDiacritic(%q) = %q, %v, %v, want %q, %v, %v", tt.r, base, mark, ok, tt.base, tt.mark, tt.ok)
		}
	}
}

// drawRune registers r on a fresh context and draws it at (x, y).
func drawRune(r rune, x, y, size int) *recordingDriver {
	d := newRecordingDriver(64, 64)
	ctx := New(d)
	ctx.AddExtraCharacter(r)
	ctx.DrawChar(x, y, ctx.CharFor(r), White, Black, size, size)
	return d
}

func drawPlain(c byte, x, y, size int) *recordingDriver {
	d := newRecordingDriver(64, 64)
	New(d).DrawChar(x, y, c, White, Black, size, size)
	return d
}

func TestDiacriticSkippedAtOddSize(t *testing.T) {
	for _, size := range []int{1, 3} {
		accented := drawRune('á', 0, 20, size)
		plain := drawPlain('a', 0, 20, size)
		if !sameImage(accented.pixels, plain.pixels) {
			t.Errorf("size %d: accent drawn at an odd size", size)
		}
	}

	logger := &recordingLogger{}
	ctx := New(newRecordingDriver(64, 64), WithLogger(logger))
	ctx.AddExtraCharacter('é')
	ctx.DrawChar(0, 20, ctx.CharFor('é'), White, Black, 2, 1)
	if len(logger.infos) != 1 || !strings.Contains(logger.infos[0], "acute") {
		t.Errorf("log = %v, want one acute skip", logger.infos)
	}
}

func TestDiacriticCaronOnDIsNotDrawn(t *testing.T) {
	accented := drawRune('ď', 0, 20, 2)
	plain := drawPlain('d', 0, 20, 2)
	if !sameImage(accented.pixels, plain.pixels) {
		t.Errorf("caron on d changed the glyph")
	}
}

func TestDiacriticAcute(t *testing.T) {
	d := drawRune('é', 0, 10, 2)

	clear := point{4, 10}
	if c, _ := d.colorAt(clear.x, clear.y); !c.Equal(Black) {
		t.Errorf("cleared block = %v, want background", c)
	}
	n := 0
	for _, p := range d.writes {
		if p == clear {
			n++
		}
	}
	if n != 2 {
		t.Errorf("cleared block written %d times, want body then clear", n)
	}
	for _, p := range []point{{4, 11}, {5, 11}, {5, 10}, {6, 10}, {7, 9}, {6, 9}} {
		if c, _ := d.colorAt(p.x, p.y); !c.Equal(White) {
			t.Errorf("stroke block %v = %v, want foreground", p, c)
		}
	}
}

func TestDiacriticCaseBias(t *testing.T) {
	upper := drawRune('É', 0, 10, 2)
	lower := drawRune('é', 0, 10, 2)

	// The top block of the stroke sits at row -4 plus the case bias.
	if !upper.has(7, 6) || upper.has(7, 9) {
		t.Errorf("uppercase accent not raised to row 6")
	}
	if !lower.has(7, 9) || lower.has(7, 6) {
		t.Errorf("lowercase accent not lowered to row 9")
	}
}

func TestDiacriticCaron(t *testing.T) {
	d := drawRune('Č', 0, 20, 4)
	// kx = ky = 2, no bias: block (2, -4) covers (4..5, 12..13).
	for _, p := range []point{{4, 12}, {5, 13}, {14, 12}, {8, 16}} {
		if c, _ := d.colorAt(p.x, p.y); !c.Equal(White) {
			t.Errorf("caron block %v = %v, want foreground", p, c)
		}
	}
}

func TestDiacriticCaronOnT(t *testing.T) {
	d := drawRune('ť', 0, 10, 2)
	for _, p := range []point{{7, 12}, {7, 11}, {8, 11}, {8, 10}} {
		if c, _ := d.colorAt(p.x, p.y); !c.Equal(White) {
			t.Errorf("caron block %v = %v, want foreground", p, c)
		}
	}
	if d.has(2, 9) {
		t.Errorf("generic caron drawn on t")
	}
}

func TestDiacriticDot(t *testing.T) {
	d := drawRune('ů', 0, 10, 2)
	for _, p := range []point{{4, 12}, {5, 12}, {4, 9}, {5, 9}, {3, 11}, {3, 10}, {6, 11}, {6, 10}} {
		if c, _ := d.colorAt(p.x, p.y); !c.Equal(White) {
			t.Errorf("ring block %v = %v, want foreground", p, c)
		}
	}
}
