package sidescroll

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RibbonsManager holds an ordered stack of ribbons and the single current
// viewport they all share. Ribbons are drawn first to last, so earlier
// ribbons sit behind later ones.
type RibbonsManager struct {
	ribbons  []*Ribbon
	viewport image.Rectangle
}

// NewRibbonsManager creates an empty ribbon stack.
func NewRibbonsManager() *RibbonsManager {
	return &RibbonsManager{}
}

// AddRibbon appends a ribbon to the stack, on top of all previous ones,
// and wires its viewport lookup to this manager.
func (m *RibbonsManager) AddRibbon(r *Ribbon) {
	r.manager = m
	m.ribbons = append(m.ribbons, r)

	if b := r.image.Bounds(); !m.viewport.Empty() &&
		(b.Dx() < m.viewport.Dx() || b.Dy() < m.viewport.Dy()) {
		debugf("warning: ribbon image %dx%d is smaller than the viewport %dx%d; expect unpainted gaps",
			b.Dx(), b.Dy(), m.viewport.Dx(), m.viewport.Dy())
	}
}

// UpdateViewport replaces the shared viewport. The loop calls this once
// per update cycle, before any ribbon draws.
func (m *RibbonsManager) UpdateViewport(viewport image.Rectangle) {
	m.viewport = viewport
}

// Viewport returns the current shared viewport.
func (m *RibbonsManager) Viewport() image.Rectangle {
	return m.viewport
}

// Display draws every ribbon back-to-front onto target.
func (m *RibbonsManager) Display(target *ebiten.Image) {
	for _, r := range m.ribbons {
		r.display(target)
	}
}
