// Package layout divides the panel viewport into the areas screens draw in.
// Results never extend past the rectangle they were cut from, so a screen
// laid out for 320x480 still lands on the panel after a rotation.
package layout

import "image"

// Normalize orders Min and Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Inset shrinks rect by pad pixels per side. An axis too small for the
// padding collapses to its center line.
func Inset(rect image.Rectangle, pad int) image.Rectangle {
	rect = Normalize(rect)
	if pad <= 0 {
		return rect
	}
	rect.Min.X, rect.Max.X = inset(rect.Min.X, rect.Max.X, pad)
	rect.Min.Y, rect.Max.Y = inset(rect.Min.Y, rect.Max.Y, pad)
	return rect
}

func inset(lo, hi, pad int) (int, int) {
	if hi-lo <= 2*pad {
		mid := lo + (hi-lo)/2
		return mid, mid
	}
	return lo + pad, hi - pad
}

// SplitRows cuts a band of height top off the top of rect. top is clamped
// to the rectangle.
func SplitRows(rect image.Rectangle, top int) (head, rest image.Rectangle) {
	rect = Normalize(rect)
	top = clamp(top, 0, rect.Dy())
	cut := rect.Min.Y + top
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, cut), image.Rect(rect.Min.X, cut, rect.Max.X, rect.Max.Y)
}

// Quadrants splits rect into four cells in reading order: top left, top
// right, bottom left, bottom right. Odd sizes give the extra pixel to the
// right and bottom cells.
func Quadrants(rect image.Rectangle) [4]image.Rectangle {
	rect = Normalize(rect)
	mid := rect.Min.Add(image.Pt(rect.Dx()/2, rect.Dy()/2))
	return [4]image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, mid.X, mid.Y),
		image.Rect(mid.X, rect.Min.Y, rect.Max.X, mid.Y),
		image.Rect(rect.Min.X, mid.Y, mid.X, rect.Max.Y),
		image.Rect(mid.X, mid.Y, rect.Max.X, rect.Max.Y),
	}
}

// Center places a w x h box in the middle of rect, shrunk to fit.
func Center(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	w = clamp(w, 0, rect.Dx())
	h = clamp(h, 0, rect.Dy())
	origin := rect.Min.Add(image.Pt((rect.Dx()-w)/2, (rect.Dy()-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
