package sidescroll

import (
	"image"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PositionPolicy supplies the loop's new world position, once per update
// cycle. It is the single per-game customization point the loop calls
// into; the loop clamps whatever it returns against the world bounds.
type PositionPolicy interface {
	NextPosition(current image.Point) image.Point
}

// PositionFunc adapts a plain function to the PositionPolicy interface.
type PositionFunc func(current image.Point) image.Point

// NextPosition calls f.
func (f PositionFunc) NextPosition(current image.Point) image.Point {
	return f(current)
}

// Drift scrolls the world at a constant velocity per update cycle — the
// classic side-scroller camera.
type Drift struct {
	DX, DY int
}

// NewDrift creates a constant-velocity scroll policy.
func NewDrift(dx, dy int) *Drift {
	return &Drift{DX: dx, DY: dy}
}

// NextPosition translates the current position by the drift velocity.
func (d *Drift) NextPosition(current image.Point) image.Point {
	return current.Add(image.Point{X: d.DX, Y: d.DY})
}

// Scroller animates the world position from its starting point to a
// target over a fixed number of update cycles with an easing function.
// Durations are measured in update cycles rather than wall time so the
// scroll is deterministic regardless of frame skipping.
//
// After the animation completes the scroller holds the target position;
// swap in another policy (or call Retarget) to keep moving.
type Scroller struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	last   image.Point
}

// NewScroller creates a scroll animation from one world position to
// another over durationUpdates update cycles.
func NewScroller(from, to image.Point, durationUpdates int, fn ease.TweenFunc) *Scroller {
	if durationUpdates < 1 {
		durationUpdates = 1
	}
	return &Scroller{
		tweenX: gween.New(float32(from.X), float32(to.X), float32(durationUpdates), fn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), float32(durationUpdates), fn),
		last:   from,
	}
}

// Retarget restarts the scroller from its current position toward a new
// target.
func (s *Scroller) Retarget(to image.Point, durationUpdates int, fn ease.TweenFunc) {
	*s = *NewScroller(s.last, to, durationUpdates, fn)
}

// Done reports whether the scroll animation has finished.
func (s *Scroller) Done() bool {
	return s.doneX && s.doneY
}

// NextPosition advances the animation by one update cycle.
func (s *Scroller) NextPosition(current image.Point) image.Point {
	if !s.doneX {
		v, done := s.tweenX.Update(1)
		s.last.X = int(v)
		s.doneX = done
	}
	if !s.doneY {
		v, done := s.tweenY.Update(1)
		s.last.Y = int(v)
		s.doneY = done
	}
	return s.last
}

// TweenMotion returns an OnTick hook that moves a sprite along a tweened
// path to the target position over durationTicks simulation ticks,
// ignoring the sprite's velocity. The sprite's frame source still advances
// and its caches are invalidated through MoveTo. Once the path completes
// the hook does nothing, so it can be cleared or replaced at leisure.
func TweenMotion(s *Sprite, to image.Point, durationTicks int, fn ease.TweenFunc) func(*Sprite) {
	if durationTicks < 1 {
		durationTicks = 1
	}
	from := s.Position()
	tweenX := gween.New(float32(from.X), float32(to.X), float32(durationTicks), fn)
	tweenY := gween.New(float32(from.Y), float32(to.Y), float32(durationTicks), fn)
	var doneX, doneY bool

	return func(s *Sprite) {
		p := s.Position()
		if !doneX {
			v, done := tweenX.Update(1)
			p.X = int(v)
			doneX = done
		}
		if !doneY {
			v, done := tweenY.Update(1)
			p.Y = int(v)
			doneY = done
		}
		s.MoveTo(p)
		if a, ok := s.Frames().(Advancer); ok {
			a.Advance()
		}
	}
}
