// Package sidescroll is a fixed-tick 2D side-scrolling engine for [Ebitengine].
//
// Sidescroll drives a fixed-rate simulation loop with adaptive frame
// skipping, manages a draw-ordered set of moving sprites with pairwise
// collision detection, and composes parallax-scrolling background layers
// ("ribbons") with the sprite layer into a single frame.
//
// # Quick start
//
// Build the managers, hand them to a [Loop], and let [Loop.Run] create the
// window and drive everything:
//
//	sprites := sidescroll.NewSpriteManager()
//	ribbons := sidescroll.NewRibbonsManager()
//	ribbons.AddRibbon(sidescroll.NewRibbon(skyImg, 0.5, 0.5, image.Point{}))
//
//	loop, err := sidescroll.NewLoop(sidescroll.Config{
//		Title: "My Game", Width: 640, Height: 480,
//		Policy: sidescroll.NewDrift(2, 0),
//	}, ribbons, sprites)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(loop.Run())
//
// For full control, implement [ebiten.Game] yourself: a Loop already is
// one, so it can be embedded in a larger game and driven through its
// Update/Draw/Layout methods.
//
// # Coordinate system
//
// All positions are integer world coordinates ([image.Point]) with the
// origin at the top-left and Y increasing downward. The viewport is the
// rectangle (world position, fixed viewport size); the loop owns the world
// position and moves it once per update cycle by asking its
// [PositionPolicy].
//
// # Ticks versus frames
//
// Simulation advances every TicksPerUpdate scheduler firings; rendering is
// decoupled and degrades first under load. When the system falls behind,
// render passes are dropped (never simulation steps), but at most
// MaxFrameSkips in a row so the display never appears frozen.
//
// # Sprites
//
// A [Sprite] is a flat struct extended through optional callback fields
// (OnTick, OnKey, OnLeaveWorld) rather than inheritance. Collision testing
// uses per-sprite hitbox sets; absolute rectangles and hitboxes are cached
// and invalidated on every position or frame change.
//
// [Ebitengine]: https://ebitengine.org
package sidescroll
