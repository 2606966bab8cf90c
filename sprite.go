package sidescroll

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a positioned, axis-aligned visual entity with a per-tick
// velocity, an optional set of collision hitboxes, and lifecycle hooks.
//
// A single flat struct is used for all sprite behaviors; games customize a
// sprite through its optional callback fields rather than subclassing:
//
//   - OnTick replaces the default motion (translate by velocity) entirely.
//     Overrides that change the position themselves MUST do so through
//     MoveTo/MoveBy so the derived caches stay fresh.
//   - OnLeaveWorld replaces the default boundary policy (clamp inside the
//     world and bounce).
//   - OnKey receives the broadcast keyboard events; the default is to
//     ignore them.
//
// The absolute bounding rectangle and absolute hitbox set are cached
// derived values. Every mutator that moves the sprite or swaps its visual
// frame invalidates them, so reads are never stale.
type Sprite struct {
	// Name identifies the sprite in diagnostics. Not required to be unique.
	Name string

	// UserData is an arbitrary game-defined payload.
	UserData any

	// OnTick, when set, replaces the default per-tick behavior.
	OnTick func(s *Sprite)

	// OnKey, when set, receives broadcast keyboard events.
	OnKey func(s *Sprite, e KeyEvent)

	// OnLeaveWorld, when set, replaces the default bounce policy. It is
	// called with the bound being enforced when the sprite's rectangle is
	// no longer fully contained in it, and returns the sprites that should
	// be removed as a consequence (usually none, sometimes the sprite
	// itself for projectiles that fly off the map).
	OnLeaveWorld func(s *Sprite, bounds image.Rectangle) []*Sprite

	position image.Point
	velocity image.Point
	frames   FrameSource

	// Relative hitboxes in image-local coordinates, set semantics,
	// insertion order. Empty means the whole current frame is the hitbox.
	hitboxes []image.Rectangle

	absRect      image.Rectangle
	absRectOK    bool
	absRectValid bool
	absHitboxes  []image.Rectangle
	absHitsValid bool
}

// NewSprite creates a sprite at the given world position. frames may be
// nil for a sprite that starts invisible.
func NewSprite(name string, frames FrameSource, position image.Point) *Sprite {
	return &Sprite{
		Name:     name,
		frames:   frames,
		position: position,
	}
}

// invalidate drops the cached absolute rectangle and hitboxes. Every
// position or frame mutation funnels through here.
func (s *Sprite) invalidate() {
	s.absRectValid = false
	s.absHitsValid = false
}

// Position returns the sprite's top-left corner in world coordinates.
func (s *Sprite) Position() image.Point {
	return s.position
}

// MoveTo sets the sprite's absolute position.
func (s *Sprite) MoveTo(p image.Point) {
	s.position = p
	s.invalidate()
}

// MoveBy translates the sprite's position by (dx, dy).
func (s *Sprite) MoveBy(dx, dy int) {
	s.position.X += dx
	s.position.Y += dy
	s.invalidate()
}

// SetVelocity sets how far the sprite moves on each tick.
func (s *Sprite) SetVelocity(dx, dy int) {
	s.velocity = image.Point{X: dx, Y: dy}
}

// SetXVelocity sets the horizontal per-tick movement.
func (s *Sprite) SetXVelocity(dx int) {
	s.velocity.X = dx
}

// SetYVelocity sets the vertical per-tick movement.
func (s *Sprite) SetYVelocity(dy int) {
	s.velocity.Y = dy
}

// Velocity returns the per-tick movement vector.
func (s *Sprite) Velocity() image.Point {
	return s.velocity
}

// Frames returns the sprite's current frame source.
func (s *Sprite) Frames() FrameSource {
	return s.frames
}

// SetFrames swaps the sprite's visual frame source. The sprite is
// recentered by half the size difference between the old and new frames so
// its apparent center stays put across the swap. Velocity and hitboxes are
// untouched; the rectangle cache is invalidated.
func (s *Sprite) SetFrames(frames FrameSource) {
	before := s.currentFrame()
	after := currentFrameOf(frames)
	s.frames = frames

	if before != nil && after != nil {
		bw, bh := before.Bounds().Dx(), before.Bounds().Dy()
		aw, ah := after.Bounds().Dx(), after.Bounds().Dy()
		s.position.X += (bw - aw) / 2
		s.position.Y += (bh - ah) / 2
	}
	s.invalidate()
}

// currentFrame returns the sprite's current image, or nil when invisible.
func (s *Sprite) currentFrame() *ebiten.Image {
	return currentFrameOf(s.frames)
}

func currentFrameOf(frames FrameSource) *ebiten.Image {
	if frames == nil {
		return nil
	}
	return frames.CurrentFrame()
}

// Tick advances the sprite by one simulation step. The default behavior
// translates the position by the velocity and advances the frame source if
// it implements [Advancer]. When OnTick is set it replaces all of that.
func (s *Sprite) Tick() {
	if s.OnTick != nil {
		s.OnTick(s)
		return
	}
	s.position.X += s.velocity.X
	s.position.Y += s.velocity.Y
	if a, ok := s.frames.(Advancer); ok {
		a.Advance()
	}
	s.invalidate()
}

// Rectangle returns the sprite's absolute bounding rectangle: its position
// plus the size of the current visual frame. The second return value is
// false when the sprite has no visual frame. The result is memoized until
// the next position or frame mutation.
func (s *Sprite) Rectangle() (image.Rectangle, bool) {
	if !s.absRectValid {
		s.absRectValid = true
		frame := s.currentFrame()
		if frame == nil {
			s.absRect = image.Rectangle{}
			s.absRectOK = false
		} else {
			b := frame.Bounds()
			s.absRect = image.Rectangle{
				Min: s.position,
				Max: s.position.Add(image.Point{X: b.Dx(), Y: b.Dy()}),
			}
			s.absRectOK = true
		}
	}
	return s.absRect, s.absRectOK
}

// AddHitbox registers a collision rectangle in image-local coordinates.
// Adding a rectangle that is already registered is a no-op.
func (s *Sprite) AddHitbox(r image.Rectangle) {
	for _, h := range s.hitboxes {
		if h == r {
			return
		}
	}
	s.hitboxes = append(s.hitboxes, r)
	s.absHitsValid = false
}

// AddHitboxes registers several hitboxes at once.
func (s *Sprite) AddHitboxes(rs []image.Rectangle) {
	for _, r := range rs {
		s.AddHitbox(r)
	}
}

// RemoveHitbox unregisters a previously added hitbox.
func (s *Sprite) RemoveHitbox(r image.Rectangle) {
	for i, h := range s.hitboxes {
		if h == r {
			s.hitboxes = append(s.hitboxes[:i], s.hitboxes[i+1:]...)
			s.absHitsValid = false
			return
		}
	}
}

// ClearHitboxes removes every registered hitbox, making the entire current
// frame the collision zone again.
func (s *Sprite) ClearHitboxes() {
	s.hitboxes = s.hitboxes[:0]
	s.absHitsValid = false
}

// Hitboxes returns the sprite's collision rectangles in absolute world
// coordinates. With no registered hitboxes the result is a one-element set
// equal to Rectangle; with no visual frame and no registered hitboxes it
// is empty. Memoized until the next position or frame mutation. The
// returned slice MUST NOT be mutated by the caller.
func (s *Sprite) Hitboxes() []image.Rectangle {
	if !s.absHitsValid {
		s.absHitsValid = true
		s.absHitboxes = s.absHitboxes[:0]
		if len(s.hitboxes) == 0 {
			if r, ok := s.Rectangle(); ok {
				s.absHitboxes = append(s.absHitboxes, r)
			}
		} else {
			for _, h := range s.hitboxes {
				s.absHitboxes = append(s.absHitboxes, h.Add(s.position))
			}
		}
	}
	return s.absHitboxes
}

// Collides reports whether any hitbox of s overlaps any hitbox of other.
// The test is open: rectangles that only share an edge do not collide.
// A sprite never collides with itself. Symmetric.
func (s *Sprite) Collides(other *Sprite) bool {
	if s == other {
		return false
	}
	for _, a := range s.Hitboxes() {
		for _, b := range other.Hitboxes() {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// VisibleIn reports whether the sprite's rectangle has positive overlap
// with the viewport.
func (s *Sprite) VisibleIn(viewport image.Rectangle) bool {
	r, ok := s.Rectangle()
	return ok && r.Overlaps(viewport)
}

// clipToViewport computes the blit rectangles for drawing the part of a
// sprite rectangle that is visible in the viewport: src is the region of
// the sprite's own image (image-local coordinates), dst the same-size
// region in viewport-local coordinates. Both are empty when the sprite is
// fully outside the viewport. Clipping on the left/top edge shifts src
// right/down by the clipped amount, which is what makes partial-sprite
// rendering pixel accurate.
func clipToViewport(sprite, viewport image.Rectangle) (src, dst image.Rectangle) {
	visible := sprite.Intersect(viewport)
	if visible.Empty() {
		return image.Rectangle{}, image.Rectangle{}
	}
	return visible.Sub(sprite.Min), visible.Sub(viewport.Min)
}

// Draw blits the visible part of the sprite onto target, which represents
// the given viewport. A sprite without a visual frame, or fully outside
// the viewport, draws nothing.
//
// The frame is fetched once and the rectangle derived from that same
// fetch, so an animation swapping frames mid-draw can't desync the clip
// math from the pixels.
func (s *Sprite) Draw(target *ebiten.Image, viewport image.Rectangle) {
	frame := s.currentFrame()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	rect := image.Rectangle{
		Min: s.position,
		Max: s.position.Add(image.Point{X: b.Dx(), Y: b.Dy()}),
	}

	src, dst := clipToViewport(rect, viewport)
	if src.Empty() {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	target.DrawImage(frame.SubImage(src.Add(b.Min)).(*ebiten.Image), op)
}

// handleKey dispatches a broadcast keyboard event to the sprite.
func (s *Sprite) handleKey(e KeyEvent) {
	if s.OnKey != nil {
		s.OnKey(s, e)
	}
}

// leaveWorld applies the boundary policy against the bound being enforced.
// The default clamps the sprite fully inside bounds on whichever edges it
// has crossed and reflects the velocity on an axis only when the sprite
// was moving outward on that axis, so a sprite already heading back in is
// not flipped twice. Returns the sprites to remove as a side effect
// (default none).
func (s *Sprite) leaveWorld(bounds image.Rectangle) []*Sprite {
	if s.OnLeaveWorld != nil {
		return s.OnLeaveWorld(s, bounds)
	}

	rect, ok := s.Rectangle()
	if !ok {
		return nil
	}
	w := rect.Dx()
	h := rect.Dy()

	if rect.Min.X < bounds.Min.X {
		s.position.X = bounds.Min.X
		if s.velocity.X < 0 {
			s.velocity.X = -s.velocity.X
		}
	}
	if rect.Min.Y < bounds.Min.Y {
		s.position.Y = bounds.Min.Y
		if s.velocity.Y < 0 {
			s.velocity.Y = -s.velocity.Y
		}
	}
	if rect.Max.X > bounds.Max.X {
		s.position.X = bounds.Max.X - w
		if s.velocity.X > 0 {
			s.velocity.X = -s.velocity.X
		}
	}
	if rect.Max.Y > bounds.Max.Y {
		s.position.Y = bounds.Max.Y - h
		if s.velocity.Y > 0 {
			s.velocity.Y = -s.velocity.Y
		}
	}

	s.invalidate()
	return nil
}
