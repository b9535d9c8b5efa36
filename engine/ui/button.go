package ui

import (
	"github.com/hubastard/groveinput/engine/colors"
	"github.com/hubastard/groveinput/engine/input"
)

// Button is a Box that runs Action when clicked, or when Enter is pressed
// while it has focus.
type Button struct {
	*Box

	Text   string
	Action func()

	pressed bool
}

func NewButton(text string, x, y, w, h float32) *Button {
	b := &Button{Box: &Box{}, Text: text}
	b.init(b, x, y, w, h, colors.Gray)
	return b
}

func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) Handle(e input.Event) bool {
	switch e := e.(type) {
	case input.MouseDownEvent:
		if e.Button != input.MouseLeft {
			return false
		}
		b.pressed = true
		if m := input.ContainingManager(b); m != nil {
			m.ChangeFocus(b)
		}
		return true
	case input.MouseUpEvent:
		if e.Button != input.MouseLeft || !b.pressed {
			return false
		}
		b.pressed = false
		if st := e.CurrentState(); st != nil && b.Contains(st.Mouse.Position) {
			b.click()
		}
		return true
	case input.KeyDownEvent:
		if e.Key == input.KeyEnter {
			b.click()
			return true
		}
		return false
	case input.FocusLostEvent:
		b.pressed = false
		return false
	}
	return b.Box.Handle(e)
}

func (b *Button) click() {
	if b.Action != nil {
		b.Action()
	}
}
