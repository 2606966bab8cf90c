package sidescroll

import "github.com/hajimehoshi/ebiten/v2"

// FrameSource supplies a sprite's current visual frame. A nil FrameSource,
// or one whose CurrentFrame returns nil, makes the sprite temporarily
// invisible: it has no rectangle, is never drawn, and (unless it has
// explicit hitboxes) does not collide. That is a normal state, not an
// error.
type FrameSource interface {
	CurrentFrame() *ebiten.Image
}

// Advancer is implemented by frame sources whose animation state moves
// forward in lockstep with the simulation. [Sprite.Tick] advances any
// FrameSource that implements it.
type Advancer interface {
	Advance()
}

// Still is a FrameSource showing a single fixed image.
type Still struct {
	Image *ebiten.Image
}

// CurrentFrame returns the wrapped image.
func (s Still) CurrentFrame() *ebiten.Image {
	return s.Image
}

// Animation cycles through a fixed sequence of frames, advancing one frame
// every TicksPerFrame simulation ticks. It implements both [FrameSource]
// and [Advancer], so sprites animate automatically during their default
// tick.
type Animation struct {
	frames        []*ebiten.Image
	ticksPerFrame int
	index         int
	counter       int

	// Loop controls what happens after the last frame: wrap to the first
	// (true, the default from NewAnimation) or hold the last (false).
	Loop bool
}

// NewAnimation creates a looping animation over frames. ticksPerFrame
// values below 1 are treated as 1 (a new frame every tick).
func NewAnimation(frames []*ebiten.Image, ticksPerFrame int) *Animation {
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	return &Animation{
		frames:        frames,
		ticksPerFrame: ticksPerFrame,
		Loop:          true,
	}
}

// CurrentFrame returns the active frame, or nil for an empty animation.
func (a *Animation) CurrentFrame() *ebiten.Image {
	if len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.index]
}

// Advance moves the animation forward by one simulation tick.
func (a *Animation) Advance() {
	if len(a.frames) < 2 {
		return
	}
	a.counter++
	if a.counter < a.ticksPerFrame {
		return
	}
	a.counter = 0
	if a.index+1 < len(a.frames) {
		a.index++
	} else if a.Loop {
		a.index = 0
	}
}

// Rewind resets the animation to its first frame.
func (a *Animation) Rewind() {
	a.index = 0
	a.counter = 0
}

// Done reports whether a non-looping animation has reached its last frame.
// Looping animations are never done.
func (a *Animation) Done() bool {
	return !a.Loop && a.index == len(a.frames)-1
}
