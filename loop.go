package sidescroll

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Default scheduling parameters, applied by NewLoop when the corresponding
// Config field is zero.
const (
	DefaultTickRate       = 60
	DefaultTicksPerUpdate = 5
	DefaultMaxFrameSkips  = 5
	DefaultTimerSlack     = 500 * time.Millisecond
)

// Config configures a Loop. Zero values for the scheduling fields select
// the package defaults above.
type Config struct {
	// Title is the window title used by Run.
	Title string

	// Width and Height fix the viewport size for the session. Both must
	// be positive.
	Width, Height int

	// WorldBounds limits legal world positions; the loop clamps the
	// viewport into it and sprites are kept inside it. Leave zero for an
	// unbounded world.
	WorldBounds image.Rectangle

	// TickRate is the scheduler frequency in firings per second.
	TickRate int

	// TicksPerUpdate is how many scheduler firings pass between
	// simulation advances.
	TicksPerUpdate int

	// MaxFrameSkips caps how many render passes may be dropped in a row
	// under load before one is forced.
	MaxFrameSkips int

	// TimerSlack is the headroom margin of the render decision: a frame
	// is rendered when the elapsed time since the previous decision plus
	// this slack exceeds the nominal inter-tick interval.
	TimerSlack time.Duration

	// Policy supplies the new world position once per update cycle. Nil
	// keeps the viewport stationary.
	Policy PositionPolicy

	// ClearColor fills the frame before the ribbons draw.
	// Nil means white, matching a bare unskinned game.
	ClearColor color.Color

	// ShowFPS overlays actual FPS/TPS in the top-left corner.
	ShowFPS bool
}

// Loop orchestrates one game: it owns the world position, drives the
// ribbon and sprite managers at a fixed tick cadence, decides per cycle
// whether to render, and presents the finished frame.
//
// Loop implements [ebiten.Game]. Ebitengine's TPS scheduler provides the
// fixed firing cadence; every Update call is one scheduler firing.
// Rendering happens into an off-screen buffer owned by the loop for the
// duration of a cycle, and Draw only blits the last completed buffer, so
// presentation is stateless per call.
type Loop struct {
	// OnRender, when set, is called after the ribbons and before the
	// sprites on every rendered frame, for game-specific layers (HUDs,
	// brick grids, ...).
	OnRender func(target *ebiten.Image)

	// Lifecycle hooks. All optional.
	OnStart  func()
	OnEnd    func()
	OnPause  func()
	OnResume func()

	cfg     Config
	ribbons *RibbonsManager
	sprites *SpriteManager

	// position is the top-left corner of the visible part of the world.
	// Owned by the loop; mutated once per update cycle.
	position image.Point

	tickCounter   int
	skippedFrames int
	lastTick      time.Time
	paused        bool
	firstTick     bool
	ended         bool

	buffer   *ebiten.Image
	interval time.Duration
	poller   keyPoller
	fps      fpsOverlay

	// Injection points for tests.
	now    func() time.Time
	render func()
}

// NewLoop creates a loop driving the given managers. Either manager may be
// nil for games that need only one of them. Returns an error when the
// viewport dimensions are not positive: the engine cannot run without a
// frame buffer.
func NewLoop(cfg Config, ribbons *RibbonsManager, sprites *SpriteManager) (*Loop, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("sidescroll: invalid viewport size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.TicksPerUpdate <= 0 {
		cfg.TicksPerUpdate = DefaultTicksPerUpdate
	}
	if cfg.MaxFrameSkips <= 0 {
		cfg.MaxFrameSkips = DefaultMaxFrameSkips
	}
	if cfg.TimerSlack <= 0 {
		cfg.TimerSlack = DefaultTimerSlack
	}
	if cfg.ClearColor == nil {
		cfg.ClearColor = color.White
	}

	l := &Loop{
		cfg:       cfg,
		ribbons:   ribbons,
		sprites:   sprites,
		firstTick: true,
		interval:  time.Second / time.Duration(cfg.TickRate),
		now:       time.Now,
	}
	l.render = l.renderFrame

	if !cfg.WorldBounds.Empty() {
		l.position = clampTopLeft(l.position, l.viewportSize(), cfg.WorldBounds)
		if sprites != nil {
			sprites.SetWorldBounds(cfg.WorldBounds)
		}
	}
	if ribbons != nil {
		ribbons.UpdateViewport(l.Viewport())
	}

	debugf("inter-frame delay: %v at tickrate %d", l.interval, cfg.TickRate)
	return l, nil
}

func (l *Loop) viewportSize() image.Point {
	return image.Point{X: l.cfg.Width, Y: l.cfg.Height}
}

// Viewport returns the rectangle of the world currently visible: the
// world position plus the fixed viewport size.
func (l *Loop) Viewport() image.Rectangle {
	return image.Rectangle{Min: l.position, Max: l.position.Add(l.viewportSize())}
}

// Position returns the current world position (the viewport's top-left
// corner).
func (l *Loop) Position() image.Point {
	return l.position
}

// step handles one scheduler firing.
func (l *Loop) step() {
	if l.sprites != nil {
		for _, e := range l.poller.poll() {
			l.sprites.HandleKey(e)
		}
	}

	// Guarantee an initial frame before any simulation advances.
	if l.firstTick {
		l.render()
		l.firstTick = false
		return
	}
	if l.paused {
		return
	}

	if l.tickCounter == 0 {
		next := l.position
		if l.cfg.Policy != nil {
			next = l.cfg.Policy.NextPosition(l.position)
		}
		if !l.cfg.WorldBounds.Empty() {
			next = clampTopLeft(next, l.viewportSize(), l.cfg.WorldBounds)
		}
		l.position = next

		if l.ribbons != nil {
			l.ribbons.UpdateViewport(l.Viewport())
		}
		if l.sprites != nil {
			l.sprites.Tick()
		}
	}

	// Render only when there is headroom, or when the skip ceiling forces
	// a frame so a loaded system never looks frozen. Simulation steps are
	// never dropped, only renders.
	elapsed := l.now().Sub(l.lastTick)
	if l.skippedFrames >= l.cfg.MaxFrameSkips || elapsed+l.cfg.TimerSlack > l.interval {
		l.render()
		l.skippedFrames = 0
	} else {
		l.skippedFrames++
	}

	l.tickCounter = (l.tickCounter + 1) % l.cfg.TicksPerUpdate
	l.lastTick = l.now()
}

// renderFrame composes one frame into the off-screen buffer: clear, then
// ribbons back-to-front, then the OnRender hook, then sprites on top.
func (l *Loop) renderFrame() {
	if l.buffer == nil {
		l.buffer = ebiten.NewImage(l.cfg.Width, l.cfg.Height)
	}
	l.buffer.Fill(l.cfg.ClearColor)

	if l.ribbons != nil {
		l.ribbons.Display(l.buffer)
	}
	if l.OnRender != nil {
		l.OnRender(l.buffer)
	}
	if l.sprites != nil {
		l.sprites.Display(l.buffer, l.Viewport())
	}
	if l.cfg.ShowFPS {
		l.fps.draw(l.buffer)
	}
}

// --- ebiten.Game ---

// Update is called by Ebitengine once per scheduler firing.
func (l *Loop) Update() error {
	if l.ended {
		return ebiten.Termination
	}
	l.step()
	return nil
}

// Draw presents the last completed frame. Called by Ebitengine at display
// rate; when the loop skipped rendering this cycle the previous buffer is
// shown again.
func (l *Loop) Draw(screen *ebiten.Image) {
	if l.buffer != nil {
		screen.DrawImage(l.buffer, nil)
	}
}

// Layout reports the fixed logical screen size.
func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return l.cfg.Width, l.cfg.Height
}

// --- Lifecycle ---

// Start marks the loop running and fires OnStart. Run calls this; call it
// yourself when driving the loop through ebiten.RunGame directly.
func (l *Loop) Start() {
	l.lastTick = l.now()
	if l.OnStart != nil {
		l.OnStart()
	}
}

// Pause suspends simulation and rendering. Input keeps being forwarded so
// an unpause key can work. Fires OnPause.
func (l *Loop) Pause() {
	l.paused = true
	if l.OnPause != nil {
		l.OnPause()
	}
}

// Resume continues a paused loop and fires OnResume.
func (l *Loop) Resume() {
	l.paused = false
	if l.OnResume != nil {
		l.OnResume()
	}
}

// IsPaused reports whether the loop is paused.
func (l *Loop) IsPaused() bool {
	return l.paused
}

// End stops the loop and fires OnEnd. The next Update returns
// ebiten.Termination, which ends Run cleanly.
func (l *Loop) End() {
	l.ended = true
	if l.OnEnd != nil {
		l.OnEnd()
	}
}

// Run creates the window and drives the loop until End is called or the
// window closes.
func (l *Loop) Run() error {
	ebiten.SetWindowTitle(l.cfg.Title)
	ebiten.SetWindowSize(l.cfg.Width, l.cfg.Height)
	ebiten.SetTPS(l.cfg.TickRate)

	l.Start()
	if err := ebiten.RunGame(l); err != nil {
		return fmt.Errorf("sidescroll: game loop: %w", err)
	}
	return nil
}
