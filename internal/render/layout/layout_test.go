package layout

import (
	"image"
	"testing"
)

func TestInset(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
		pad  int
		want image.Rectangle
	}{
		{"zero", image.Rect(0, 0, 10, 10), 0, image.Rect(0, 0, 10, 10)},
		{"normal", image.Rect(0, 0, 10, 10), 2, image.Rect(2, 2, 8, 8)},
		{"collapsed", image.Rect(0, 0, 4, 4), 3, image.Rect(2, 2, 2, 2)},
		{"one axis collapsed", image.Rect(0, 0, 40, 6), 4, image.Rect(4, 3, 36, 3)},
		{"inverted input", image.Rect(10, 10, 0, 0), 1, image.Rect(1, 1, 9, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inset(tt.rect, tt.pad); got != tt.want {
				t.Errorf("Inset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitRows(t *testing.T) {
	r := image.Rect(10, 20, 110, 220)

	head, rest := SplitRows(r, 50)
	if head != image.Rect(10, 20, 110, 70) || rest != image.Rect(10, 70, 110, 220) {
		t.Errorf("SplitRows = %v, %v", head, rest)
	}
	head, rest = SplitRows(r, -5)
	if !head.Empty() || rest != r {
		t.Errorf("SplitRows negative = %v, %v", head, rest)
	}
	head, rest = SplitRows(r, 500)
	if head != r || !rest.Empty() {
		t.Errorf("SplitRows oversized = %v, %v", head, rest)
	}
}

func TestQuadrants(t *testing.T) {
	q := Quadrants(image.Rect(0, 0, 320, 480))
	if q[0] != image.Rect(0, 0, 160, 240) || q[3] != image.Rect(160, 240, 320, 480) {
		t.Errorf("Quadrants = %v", q)
	}
	odd := Quadrants(image.Rect(0, 0, 5, 3))
	if odd[0].Dx() != 2 || odd[1].Dx() != 3 || odd[2].Dy() != 2 {
		t.Errorf("odd Quadrants = %v", odd)
	}
}

func TestCenter(t *testing.T) {
	r := image.Rect(0, 0, 320, 200)
	if got := Center(r, 100, 50); got != image.Rect(110, 75, 210, 125) {
		t.Errorf("Center = %v", got)
	}
	if got := Center(r, 1000, 50); got != image.Rect(0, 75, 320, 125) {
		t.Errorf("Center oversized = %v", got)
	}
	if got := Center(r, -3, 10); got.Dx() != 0 || got.Min.X != 160 {
		t.Errorf("Center negative = %v", got)
	}
}
