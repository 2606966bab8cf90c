package sidescroll

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRibbonPiecesNoWrap(t *testing.T) {
	// Viewport fully inside the image: exactly one piece, equal to the
	// direct sub-rectangle at the effective position.
	imageSize := image.Point{X: 800, Y: 600}
	viewSize := image.Point{X: 200, Y: 150}
	eff := image.Point{X: 100, Y: 50}

	pieces := ribbonPieces(eff, imageSize, viewSize)
	if len(pieces) != 1 {
		t.Fatalf("got %d pieces, want 1", len(pieces))
	}
	if pieces[0].src != image.Rect(100, 50, 300, 200) {
		t.Errorf("src = %v, want (100,50)-(300,200)", pieces[0].src)
	}
	if pieces[0].dst != image.Rect(0, 0, 200, 150) {
		t.Errorf("dst = %v, want the whole viewport", pieces[0].dst)
	}
}

func TestRibbonPiecesWrapX(t *testing.T) {
	imageSize := image.Point{X: 300, Y: 600}
	viewSize := image.Point{X: 200, Y: 150}
	eff := image.Point{X: 250, Y: 0} // 50px before the right edge

	pieces := ribbonPieces(eff, imageSize, viewSize)
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}
	// Left part: last 50 columns of the image.
	if pieces[0].src != image.Rect(250, 0, 300, 150) || pieces[0].dst != image.Rect(0, 0, 50, 150) {
		t.Errorf("left piece = %+v", pieces[0])
	}
	// Right part: first 150 columns, placed after the seam.
	if pieces[1].src != image.Rect(0, 0, 150, 150) || pieces[1].dst != image.Rect(50, 0, 200, 150) {
		t.Errorf("right piece = %+v", pieces[1])
	}
}

func TestRibbonPiecesWrapBothAxes(t *testing.T) {
	imageSize := image.Point{X: 300, Y: 200}
	viewSize := image.Point{X: 100, Y: 80}
	eff := image.Point{X: 260, Y: 170} // wraps on both axes

	pieces := ribbonPieces(eff, imageSize, viewSize)
	if len(pieces) != 4 {
		t.Fatalf("got %d pieces, want 4", len(pieces))
	}

	// Destinations must tile the viewport exactly: no gaps, no overlaps.
	viewport := image.Rect(0, 0, viewSize.X, viewSize.Y)
	area := 0
	for i, p := range pieces {
		if p.dst.Dx() != p.src.Dx() || p.dst.Dy() != p.src.Dy() {
			t.Errorf("piece %d: src %v and dst %v differ in size", i, p.src, p.dst)
		}
		if !p.dst.In(viewport) {
			t.Errorf("piece %d: dst %v escapes the viewport", i, p.dst)
		}
		area += p.dst.Dx() * p.dst.Dy()
		for j := i + 1; j < len(pieces); j++ {
			if p.dst.Overlaps(pieces[j].dst) {
				t.Errorf("pieces %d and %d overlap: %v, %v", i, j, p.dst, pieces[j].dst)
			}
		}
	}
	if area != viewSize.X*viewSize.Y {
		t.Errorf("pieces cover %d px², want %d (gap-free tiling)", area, viewSize.X*viewSize.Y)
	}
}

func TestRibbonPiecesSmallImage(t *testing.T) {
	// Image smaller than the viewport: not an error. Pieces whose width
	// or height collapses to zero are skipped, and oversized source rects
	// that remain are clipped against the image at draw time (SubImage).
	imageSize := image.Point{X: 50, Y: 40}
	viewSize := image.Point{X: 200, Y: 150}
	eff := image.Point{X: 10, Y: 10}

	pieces := ribbonPieces(eff, imageSize, viewSize)
	if len(pieces) == 0 {
		t.Fatal("undersized image should still produce pieces")
	}
	// The top-left piece shows what's left of the image past the offset.
	if pieces[0].src != image.Rect(10, 10, 50, 40) {
		t.Errorf("TL src = %v, want (10,10)-(50,40)", pieces[0].src)
	}
	for _, p := range pieces {
		if p.src.Dx() <= 0 || p.src.Dy() <= 0 {
			t.Errorf("degenerate piece emitted: %+v", p)
		}
		if p.src.Dx() != p.dst.Dx() || p.src.Dy() != p.dst.Dy() {
			t.Errorf("piece sizes differ: src %v, dst %v", p.src, p.dst)
		}
	}
}

func TestRibbonPiecesZeroOffset(t *testing.T) {
	pieces := ribbonPieces(image.Point{}, image.Point{X: 400, Y: 300}, image.Point{X: 400, Y: 300})
	if len(pieces) != 1 {
		t.Fatalf("got %d pieces, want 1", len(pieces))
	}
	if pieces[0].src != image.Rect(0, 0, 400, 300) {
		t.Errorf("src = %v, want the full image", pieces[0].src)
	}
}

// --- Manager ---

func TestRibbonsManagerViewport(t *testing.T) {
	m := NewRibbonsManager()
	vp := image.Rect(10, 20, 110, 120)
	m.UpdateViewport(vp)
	if m.Viewport() != vp {
		t.Errorf("Viewport = %v, want %v", m.Viewport(), vp)
	}
}

func TestAddRibbonWiresManager(t *testing.T) {
	m := NewRibbonsManager()
	r := NewRibbon(ebiten.NewImage(64, 64), 1, 1, image.Point{})
	m.AddRibbon(r)
	if r.manager != m {
		t.Error("AddRibbon should set the back-reference")
	}
}

func TestRibbonDisplayWithoutManagerIsNoOp(t *testing.T) {
	r := NewRibbon(ebiten.NewImage(64, 64), 1, 1, image.Point{})
	r.display(ebiten.NewImage(32, 32)) // must not panic
}

func TestRibbonScalingAndWrap(t *testing.T) {
	// A 0.5-scale ribbon at world x=100 with a 40px-wide image lands at
	// wrapMod(50, 40) = 10.
	m := NewRibbonsManager()
	r := NewRibbon(ebiten.NewImage(40, 40), 0.5, 0.5, image.Point{})
	m.AddRibbon(r)
	m.UpdateViewport(image.Rect(100, 100, 120, 120))

	pos := m.Viewport().Min.Add(r.origin)
	effX := wrapMod(int(float64(pos.X)*r.xScale), 40)
	effY := wrapMod(int(float64(pos.Y)*r.yScale), 40)
	if effX != 10 || effY != 10 {
		t.Errorf("effective offset = (%d,%d), want (10,10)", effX, effY)
	}
}

func TestRibbonNegativePositionWraps(t *testing.T) {
	// Negative world positions wrap to the top of the range.
	if got := wrapMod(int(float64(-30)*1.0), 40); got != 10 {
		t.Errorf("effective = %d, want 10", got)
	}
}
