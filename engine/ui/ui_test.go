package ui

import (
	"testing"

	"github.com/hubastard/groveinput/engine/colors"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/scene"
)

func press(m *input.Manager, x, y float32) {
	m.Enqueue(input.MousePositionAbsoluteInput{Position: input.Vec2{X: x, Y: y}})
	m.Enqueue(input.NewMouseButtonInput(input.MouseLeft, true))
}

func TestButton_ClickAndEnter(t *testing.T) {
	root := input.NewManager()
	b := NewButton("ok", 10, 10, 50, 20)
	clicks := 0
	b.Action = func() { clicks++ }
	root.Add(b)

	press(root, 20, 20)
	root.Update()
	if !b.Pressed() || root.Focused() != b {
		t.Fatal("mouse down did not press and focus the button")
	}
	root.Enqueue(input.NewMouseButtonInput(input.MouseLeft, false))
	root.Update()
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}

	root.Enqueue(input.KeyboardKeyInput{Key: input.KeyEnter, Pressed: true})
	root.Update()
	if clicks != 2 {
		t.Errorf("clicks after Enter = %d, want 2", clicks)
	}
}

func TestButton_ReleaseOutsideDoesNotClick(t *testing.T) {
	root := input.NewManager()
	b := NewButton("ok", 0, 0, 10, 10)
	clicks := 0
	b.Action = func() { clicks++ }
	root.Add(b)

	press(root, 5, 5)
	root.Enqueue(input.MousePositionAbsoluteInput{Position: input.Vec2{X: 50, Y: 50}})
	root.Enqueue(input.NewMouseButtonInput(input.MouseLeft, false))
	root.Update()

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	if b.Pressed() {
		t.Error("button still pressed")
	}
}

func TestBox_DragAndHover(t *testing.T) {
	root := input.NewManager()
	box := NewBox(0, 0, 10, 10, colors.Red)
	box.Draggable = true
	root.Add(box)

	root.Enqueue(input.MousePositionAbsoluteInput{Position: input.Vec2{X: 5, Y: 5}})
	scene.UpdateSubTree(root)
	if !box.Hovered() || box.CurrentColor() != box.HoverColor {
		t.Error("box not hovered under the cursor")
	}

	root.Enqueue(input.NewMouseButtonInput(input.MouseLeft, true))
	root.Enqueue(input.MousePositionAbsoluteInput{Position: input.Vec2{X: 6, Y: 6}})
	root.Enqueue(input.MousePositionAbsoluteInput{Position: input.Vec2{X: 8, Y: 9}})
	root.Enqueue(input.NewMouseButtonInput(input.MouseLeft, false))
	scene.UpdateSubTree(root)

	if got, want := box.Pos(), (input.Vec2{X: 2, Y: 3}); got != want {
		t.Errorf("Pos() = %v, want %v", got, want)
	}
}

func TestBox_BlocksWhatIsBelow(t *testing.T) {
	root := input.NewManager()
	below := NewButton("below", 0, 0, 10, 10)
	clicked := false
	below.Action = func() { clicked = true }
	root.Add(below, NewBox(0, 0, 10, 10, colors.Blue))

	press(root, 5, 5)
	root.Enqueue(input.NewMouseButtonInput(input.MouseLeft, false))
	root.Update()

	if clicked {
		t.Error("click went through the box on top")
	}
}
