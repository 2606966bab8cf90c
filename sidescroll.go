package sidescroll

import "image"

// Geometry throughout the package uses the standard [image.Point] and
// [image.Rectangle] types: they are the currency of Ebitengine's SubImage
// API, and Rectangle.Overlaps is exactly the open intersection test
// collision detection needs (rectangles that only touch do not overlap).

// clampInt limits v to the inclusive range [lo, hi].
// When lo > hi the lower bound wins.
func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// clampTopLeft returns the top-left position that keeps a rectangle of the
// given size fully inside bounds, starting from p and clamping each axis
// independently. When bounds is smaller than size on an axis, the far edge
// wins (the rectangle is pinned so its bottom/right edge coincides with
// the bound's).
func clampTopLeft(p image.Point, size image.Point, bounds image.Rectangle) image.Point {
	p.X = max(bounds.Min.X, p.X)
	p.Y = max(bounds.Min.Y, p.Y)
	p.X = min(p.X, bounds.Max.X-size.X)
	p.Y = min(p.Y, bounds.Max.Y-size.Y)
	return p
}

// wrapMod wraps v into [0, m) with floored-division semantics, so negative
// values wrap to the top of the range. m must be positive.
func wrapMod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
