// Package ui holds small interactive drawables.
package ui

import (
	"github.com/hubastard/groveinput/engine/colors"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/scene"
)

// Box is a coloured rectangle that tracks hover and can be dragged. It
// blocks positional input from reaching what lies below it.
type Box struct {
	*scene.Base

	Color      colors.Color
	HoverColor colors.Color
	Draggable  bool

	hovered bool
}

func NewBox(x, y, w, h float32, c colors.Color) *Box {
	b := &Box{}
	b.init(b, x, y, w, h, c)
	return b
}

// init sets up the box for owner, which is the box itself or a type
// embedding it.
func (b *Box) init(owner scene.Drawable, x, y, w, h float32, c colors.Color) {
	b.SetColor(c)
	b.Base = scene.NewBase(owner)
	b.HandlePositional = true
	b.SetBounds(x, y, w, h)
}

// SetColor sets the colour and derives the hover colour from it.
func (b *Box) SetColor(c colors.Color) {
	b.Color = c
	b.HoverColor = c.WithAlpha(c[3] * 0.8)
}

func (b *Box) Hovered() bool { return b.hovered }

// CurrentColor is the colour to draw with.
func (b *Box) CurrentColor() colors.Color {
	if b.hovered {
		return b.HoverColor
	}
	return b.Color
}

// Update recomputes hover from the containing manager's mouse state.
func (b *Box) Update() {
	m := input.ContainingManager(b)
	if m == nil {
		b.hovered = false
		return
	}
	mouse := m.State().Mouse
	b.hovered = mouse.IsPositionValid && b.Contains(mouse.Position)
}

func (b *Box) Handle(e input.Event) bool {
	switch e := e.(type) {
	case input.MouseMoveEvent, input.ScrollEvent:
		return true
	case input.MouseDownEvent:
		return true
	case input.DragStartEvent:
		return b.Draggable && e.Button == input.MouseLeft
	case input.DragEvent:
		p := b.Pos().Add(e.Delta)
		b.SetPos(p.X, p.Y)
		return true
	}
	return false
}
