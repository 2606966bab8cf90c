package sidescroll

import (
	"image"
	"testing"
)

func TestClampInt(t *testing.T) {
	if got := clampInt(5, 0, 10); got != 5 {
		t.Errorf("clampInt(5,0,10) = %d, want 5", got)
	}
	if got := clampInt(-3, 0, 10); got != 0 {
		t.Errorf("clampInt(-3,0,10) = %d, want 0", got)
	}
	if got := clampInt(42, 0, 10); got != 10 {
		t.Errorf("clampInt(42,0,10) = %d, want 10", got)
	}
}

func TestClampIntLowerBoundWins(t *testing.T) {
	// Inverted range: lower bound applies last.
	if got := clampInt(7, 10, 5); got != 10 {
		t.Errorf("clampInt(7,10,5) = %d, want 10", got)
	}
}

func TestClampTopLeftInside(t *testing.T) {
	bounds := image.Rect(0, 0, 1000, 500)
	size := image.Point{X: 100, Y: 100}
	p := clampTopLeft(image.Point{X: 200, Y: 50}, size, bounds)
	if p != (image.Point{X: 200, Y: 50}) {
		t.Errorf("position inside bounds moved to %v", p)
	}
}

func TestClampTopLeftEdges(t *testing.T) {
	bounds := image.Rect(0, 0, 1000, 500)
	size := image.Point{X: 100, Y: 100}

	p := clampTopLeft(image.Point{X: -20, Y: -5}, size, bounds)
	if p != (image.Point{}) {
		t.Errorf("min clamp = %v, want (0,0)", p)
	}

	p = clampTopLeft(image.Point{X: 950, Y: 450}, size, bounds)
	if p != (image.Point{X: 900, Y: 400}) {
		t.Errorf("max clamp = %v, want (900,400)", p)
	}
}

func TestClampTopLeftAxesIndependent(t *testing.T) {
	bounds := image.Rect(0, 0, 1000, 500)
	size := image.Point{X: 100, Y: 100}
	p := clampTopLeft(image.Point{X: -50, Y: 470}, size, bounds)
	if p != (image.Point{X: 0, Y: 400}) {
		t.Errorf("mixed clamp = %v, want (0,400)", p)
	}
}

func TestWrapMod(t *testing.T) {
	cases := []struct{ v, m, want int }{
		{0, 10, 0},
		{3, 10, 3},
		{10, 10, 0},
		{13, 10, 3},
		{-1, 10, 9},
		{-10, 10, 0},
		{-13, 10, 7},
	}
	for _, c := range cases {
		if got := wrapMod(c.v, c.m); got != c.want {
			t.Errorf("wrapMod(%d,%d) = %d, want %d", c.v, c.m, got, c.want)
		}
	}
}
