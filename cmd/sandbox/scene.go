package main

import (
	"log/slog"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/colors"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/scene"
	"github.com/hubastard/groveinput/engine/ui"
)

// canvas is what the sandbox draws boxes onto.
type canvas interface {
	FillRect(x, y, w, h float32, c [4]float32)
}

// hotkeys sits behind everything and takes the keys nobody else wants.
type hotkeys struct {
	*scene.Base
	quit   func()
	toggle func()
}

func newHotkeys(quit, toggle func()) *hotkeys {
	h := &hotkeys{quit: quit, toggle: toggle}
	h.Base = scene.NewBase(h)
	h.HandleNonPositional = true
	return h
}

func (h *hotkeys) Handle(e input.Event) bool {
	k, ok := e.(input.KeyDownEvent)
	if !ok {
		return false
	}
	switch k.Key {
	case input.KeyEscape:
		h.quit()
	case input.KeyF1:
		h.toggle()
	default:
		return false
	}
	return true
}

// demoScene is the drawable tree of the sandbox: a toolbar, a draggable box
// and a panel whose contents read their input through a pass-through
// manager.
type demoScene struct {
	panel *ui.Box
	pt    *input.PassThroughManager
}

// buildScene lays the demo out for a surface of the given unit size. Cell
// based surfaces use unit 1, windows a few pixels per unit.
func buildScene(root *input.Manager, unit float32, passThrough bool, quit func(), log *slog.Logger) *demoScene {
	u := func(v float32) float32 { return v * unit }
	d := &demoScene{}

	toggle := ui.NewButton("pass-through", u(2), u(1), u(16), u(3))
	toggle.SetColor(colors.Yellow)
	toggle.Action = func() { d.pt.UseParentInput.Set(!d.pt.UseParentInput.Value()) }

	count := 0
	counter := ui.NewButton("count", u(20), u(1), u(12), u(3))
	counter.Action = func() {
		count++
		log.Info("clicked", "button", counter.Text, "count", count)
	}

	drag := ui.NewBox(u(2), u(6), u(8), u(4), colors.Red)
	drag.Draggable = true

	// The panel covers the pass-through subtree so the root's queue finds
	// something under the cursor there.
	d.panel = ui.NewBox(u(14), u(6), u(24), u(12), colors.DarkGray.WithAlpha(0.6))
	d.pt = input.NewPassThroughManager(input.WithLogger(log))
	d.pt.UseParentInput.Set(passThrough)
	d.pt.UseParentInput.OnChange(func(c bindable.ValueChanged[bool]) {
		log.Info("pass-through", "enabled", c.New)
	}, false)

	inner := ui.NewButton("inner", u(16), u(8), u(10), u(3))
	inner.SetColor(colors.Green)
	inner.Action = func() { log.Info("clicked", "button", inner.Text) }
	innerDrag := ui.NewBox(u(28), u(12), u(6), u(4), colors.Blue)
	innerDrag.Draggable = true
	d.pt.Add(inner, innerDrag)

	root.Add(newHotkeys(quit, toggle.Action), d.panel, d.pt, drag, toggle, counter)
	return d
}

// draw paints every box under d, parents first so that children end up on
// top, matching the positional queue order.
func draw(c canvas, d scene.Drawable, bg colors.Color) {
	var col colors.Color
	switch b := d.(type) {
	case *ui.Button:
		col = b.CurrentColor()
		if b.Pressed() {
			col = col.WithAlpha(col[3] * 0.6)
		}
	case *ui.Box:
		col = b.CurrentColor()
	}
	if col[3] > 0 {
		n := d.Node()
		p, s := n.Pos(), n.Size()
		c.FillRect(p.X, p.Y, s.X, s.Y, col.Over(bg))
	}
	for _, k := range d.Node().Children() {
		draw(c, k, bg)
	}
}
