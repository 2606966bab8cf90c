package sidescroll

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Ribbon is a single parallax-scrolling background layer. One oversized
// image simulates an infinitely repeating backdrop purely through
// arithmetic offsetting: the layer's offset is the world position scaled
// by (xScale, yScale) and wrapped around the image, no tile grid needed.
//
// Scales below 1 make the layer move slower than the world (distant
// background); above 1, faster (foreground).
//
// The image should be larger than the viewport on both axes. Smaller
// images are not an error — the tiling math stays correct and simply
// produces empty pieces more often — but they leave unpainted gaps, so a
// debug-mode warning is emitted when the manager learns the viewport size.
type Ribbon struct {
	image          *ebiten.Image
	xScale, yScale float64
	origin         image.Point

	// Back-reference for viewport lookup only; the manager owns the
	// ribbon, never the other way around.
	manager *RibbonsManager
}

// NewRibbon creates a ribbon layer. origin defines which point of the
// ribbon image world position (0, 0) maps to.
func NewRibbon(img *ebiten.Image, xScale, yScale float64, origin image.Point) *Ribbon {
	r := &Ribbon{
		image:  img,
		xScale: xScale,
		yScale: yScale,
		origin: origin,
	}
	debugf("ribbon loaded from image with dimensions %d x %d", img.Bounds().Dx(), img.Bounds().Dy())
	return r
}

// tilePiece is one (source, destination) rectangle pair of the toroidal
// tiling. Source is image-local, destination viewport-local.
type tilePiece struct {
	src, dst image.Rectangle
}

// ribbonPieces splits the visible tile into up to four rectangular pieces.
// effective is the wrapped layer offset in [0, imageSize.X) × [0,
// imageSize.Y). Pieces with zero width or height are omitted.
//
// With the offset (x, y) inside the image, the viewport may straddle the
// image's right and/or bottom edge. a/b measure how much of the viewport
// is covered before wrapping on each axis, c/d the remainder after:
//
//	a = clamp(imageW - x, 0, viewW)    c = clamp(viewW - a, 0, viewW)
//	b = clamp(imageH - y, 0, viewH)    d = clamp(viewH - b, 0, viewH)
//
// yielding the four candidate pieces TL, TR, BL, BR whose destinations
// tile the viewport exactly.
func ribbonPieces(effective, imageSize, viewSize image.Point) []tilePiece {
	a := clampInt(imageSize.X-effective.X, 0, viewSize.X)
	b := clampInt(imageSize.Y-effective.Y, 0, viewSize.Y)
	c := clampInt(viewSize.X-a, 0, viewSize.X)
	d := clampInt(viewSize.Y-b, 0, viewSize.Y)

	candidates := [4]tilePiece{
		{ // top-left
			src: image.Rect(effective.X, effective.Y, effective.X+a, effective.Y+b),
			dst: image.Rect(0, 0, a, b),
		},
		{ // top-right
			src: image.Rect(0, effective.Y, c, effective.Y+b),
			dst: image.Rect(a, 0, a+c, b),
		},
		{ // bottom-left
			src: image.Rect(effective.X, 0, effective.X+a, d),
			dst: image.Rect(0, b, a, b+d),
		},
		{ // bottom-right
			src: image.Rect(0, 0, c, d),
			dst: image.Rect(a, b, a+c, b+d),
		},
	}

	pieces := make([]tilePiece, 0, 4)
	for _, p := range candidates {
		if p.src.Dx() > 0 && p.src.Dy() > 0 {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// display draws this layer for the manager's current viewport.
func (r *Ribbon) display(target *ebiten.Image) {
	if r.manager == nil {
		return
	}
	viewport := r.manager.Viewport()

	b := r.image.Bounds()
	imageSize := image.Point{X: b.Dx(), Y: b.Dy()}
	if imageSize.X <= 0 || imageSize.Y <= 0 {
		return
	}

	// Offset relative to the ribbon's logical origin, scaled to make
	// layers move at different speeds, truncated and wrapped around the
	// image on both axes.
	pos := viewport.Min.Add(r.origin)
	effective := image.Point{
		X: wrapMod(int(float64(pos.X)*r.xScale), imageSize.X),
		Y: wrapMod(int(float64(pos.Y)*r.yScale), imageSize.Y),
	}

	viewSize := image.Point{X: viewport.Dx(), Y: viewport.Dy()}
	for _, p := range ribbonPieces(effective, imageSize, viewSize) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(p.dst.Min.X), float64(p.dst.Min.Y))
		target.DrawImage(r.image.SubImage(p.src.Add(b.Min)).(*ebiten.Image), op)
	}
}
