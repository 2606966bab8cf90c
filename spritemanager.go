package sidescroll

import (
	"fmt"
	"image"
	"os"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
)

// CollisionListener is notified for every colliding sprite pair detected
// during a tick. The returned sprites are removed from the manager once
// the tick's collision scan has completed.
type CollisionListener interface {
	HandleCollision(a, b *Sprite) []*Sprite
}

// CollisionFunc adapts a plain function to the CollisionListener interface.
type CollisionFunc func(a, b *Sprite) []*Sprite

// HandleCollision calls f.
func (f CollisionFunc) HandleCollision(a, b *Sprite) []*Sprite {
	return f(a, b)
}

// SpriteManager owns the ordered list of sprites in a game. The list order
// is the draw order: sprites added later are drawn on top of earlier ones.
//
// Each call to Tick advances every sprite, enforces the world bounds, and
// runs the pairwise collision scan, notifying every registered listener
// for every colliding pair. Keyboard events given to HandleKey are
// broadcast to every sprite in draw order.
type SpriteManager struct {
	sprites   []*Sprite
	listeners []CollisionListener

	worldBounds image.Rectangle
	hasBounds   bool
}

// NewSpriteManager creates an empty sprite manager with unbounded world.
func NewSpriteManager() *SpriteManager {
	return &SpriteManager{}
}

// AddSprite appends a sprite to the end of the list, so it is drawn on top
// of all previously added sprites.
func (m *SpriteManager) AddSprite(s *Sprite) {
	m.sprites = append(m.sprites, s)
	if globalDebug {
		debugCheckSpriteCount(len(m.sprites))
	}
}

// AddSpriteAt inserts a sprite at the given index: it is drawn on top of
// sprites with a lower index and behind sprites with a higher one.
// Panics if the index is out of range.
func (m *SpriteManager) AddSpriteAt(s *Sprite, index int) {
	if index < 0 || index > len(m.sprites) {
		panic("sidescroll: sprite index out of range")
	}
	m.sprites = append(m.sprites, nil)
	copy(m.sprites[index+1:], m.sprites[index:])
	m.sprites[index] = s
}

// RemoveSprite removes a sprite from the list, preserving the order of the
// others. Reports whether the sprite was present.
func (m *SpriteManager) RemoveSprite(s *Sprite) bool {
	for i, cur := range m.sprites {
		if cur == s {
			copy(m.sprites[i:], m.sprites[i+1:])
			m.sprites[len(m.sprites)-1] = nil
			m.sprites = m.sprites[:len(m.sprites)-1]
			return true
		}
	}
	return false
}

// Sprites returns the managed sprites in draw order. The returned slice
// MUST NOT be mutated by the caller.
func (m *SpriteManager) Sprites() []*Sprite {
	return m.sprites
}

// Len returns the number of managed sprites.
func (m *SpriteManager) Len() int {
	return len(m.sprites)
}

// SetWorldBounds configures the rectangle sprites are kept inside. A
// sprite whose rectangle is not fully contained has its boundary policy
// invoked during the next tick.
func (m *SpriteManager) SetWorldBounds(bounds image.Rectangle) {
	m.worldBounds = bounds
	m.hasBounds = true
}

// ClearWorldBounds removes the world bounds; sprites roam freely.
func (m *SpriteManager) ClearWorldBounds() {
	m.worldBounds = image.Rectangle{}
	m.hasBounds = false
}

// AddCollisionListener registers a listener. Listeners are notified in
// registration order. Registering a listener that compares equal to an
// already registered one is a no-op (function listeners are never
// comparable and always register).
func (m *SpriteManager) AddCollisionListener(l CollisionListener) {
	for _, existing := range m.listeners {
		if listenersEqual(existing, l) {
			return
		}
	}
	m.listeners = append(m.listeners, l)
}

// RemoveCollisionListener unregisters a previously added listener.
func (m *SpriteManager) RemoveCollisionListener(l CollisionListener) {
	for i, existing := range m.listeners {
		if listenersEqual(existing, l) {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// listenersEqual compares two listeners by identity, guarding against
// uncomparable dynamic types (comparing those with == would panic).
func listenersEqual(a, b CollisionListener) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Tick runs one simulation step over all sprites, in three strict phases:
//
//  1. Advance: every sprite's Tick runs, in draw order, before any
//     collision work starts.
//  2. Scan: for each sprite by ascending index, the boundary policy runs
//     if world bounds are set and the sprite's rectangle is not fully
//     contained; then the sprite is tested against every later sprite, so
//     each unordered pair is tested exactly once per tick. On a hit,
//     every listener is notified in registration order.
//  3. Removal: sprites named by listener or boundary-policy returns are
//     removed, preserving the order of the survivors. Removal is deferred
//     to here so a doomed sprite still participates in the rest of the
//     scan and the pair-coverage contract holds for the whole tick.
//
// A panicking listener is logged and skipped; the remaining listeners
// still run.
func (m *SpriteManager) Tick() {
	for _, s := range m.sprites {
		s.Tick()
	}

	var doomed []*Sprite
	for i, s := range m.sprites {
		if m.hasBounds {
			if r, ok := s.Rectangle(); ok && !r.In(m.worldBounds) {
				doomed = append(doomed, s.leaveWorld(m.worldBounds)...)
			}
		}
		for j := i + 1; j < len(m.sprites); j++ {
			if s.Collides(m.sprites[j]) {
				for _, l := range m.listeners {
					doomed = append(doomed, m.notify(l, s, m.sprites[j])...)
				}
			}
		}
	}

	if len(doomed) > 0 {
		m.removeAll(doomed)
	}
}

// notify invokes one listener, isolating panics so one failing listener
// cannot block the rest.
func (m *SpriteManager) notify(l CollisionListener, a, b *Sprite) (removals []*Sprite) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[sidescroll] collision listener panicked on pair (%q, %q): %v\n", a.Name, b.Name, r)
		}
	}()
	return l.HandleCollision(a, b)
}

// removeAll removes every listed sprite, keeping survivor order.
func (m *SpriteManager) removeAll(doomed []*Sprite) {
	drop := make(map[*Sprite]struct{}, len(doomed))
	for _, s := range doomed {
		if s != nil {
			drop[s] = struct{}{}
		}
	}
	kept := m.sprites[:0]
	for _, s := range m.sprites {
		if _, gone := drop[s]; !gone {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(m.sprites); i++ {
		m.sprites[i] = nil
	}
	m.sprites = kept
}

// Display draws every sprite in draw order onto target for the given
// viewport.
func (m *SpriteManager) Display(target *ebiten.Image, viewport image.Rectangle) {
	for _, s := range m.sprites {
		s.Draw(target, viewport)
	}
}

// HandleKey broadcasts a keyboard event to every sprite in draw order.
func (m *SpriteManager) HandleKey(e KeyEvent) {
	for _, s := range m.sprites {
		s.handleKey(e)
	}
}
