package sidescroll

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyEventKind identifies what happened to a key.
type KeyEventKind uint8

const (
	KeyPressed  KeyEventKind = iota // key went down this tick
	KeyReleased                     // key came up this tick
	KeyTyped                        // a character was produced (IME/layout aware)
)

// KeyEvent is one discrete keyboard event. The loop synthesizes these from
// Ebitengine's polled keyboard state once per scheduler firing and
// broadcasts them to every sprite in draw order.
//
// Key is valid for KeyPressed and KeyReleased; Char for KeyTyped.
type KeyEvent struct {
	Kind KeyEventKind
	Key  ebiten.Key
	Char rune
}

// keyPoller turns Ebitengine's polled keyboard state into an ordered event
// stream. Scratch slices are reused across ticks.
type keyPoller struct {
	events []KeyEvent
	keys   []ebiten.Key
	chars  []rune
}

// poll returns this tick's key events: presses, then releases, then typed
// characters, each group in the order Ebitengine reports them. The
// returned slice is owned by the poller and valid until the next call.
func (p *keyPoller) poll() []KeyEvent {
	p.events = p.events[:0]

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.events = append(p.events, KeyEvent{Kind: KeyPressed, Key: k})
	}

	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.events = append(p.events, KeyEvent{Kind: KeyReleased, Key: k})
	}

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	for _, c := range p.chars {
		p.events = append(p.events, KeyEvent{Kind: KeyTyped, Char: c})
	}

	return p.events
}
