package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/hubastard/groveinput/engine/colors"
	"github.com/hubastard/groveinput/engine/platform/term"
)

// termWindow presents a tcell screen as a core.Window. Units are cells.
type termWindow struct {
	screen tcell.Screen
	input  *term.Handler
}

func (w *termWindow) PollEvents()       {} // the handler reads on its own goroutine
func (w *termWindow) SwapBuffers()      { w.screen.Show() }
func (w *termWindow) ShouldClose() bool { return false }

func (w *termWindow) SetFocusLostCallback(fn func()) { w.input.SetFocusLostCallback(fn) }

func (w *termWindow) Clear(r, g, b, a float32) {
	w.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(colors.Color{r, g, b, a})))
}

func (w *termWindow) FillRect(x, y, wd, ht float32, c [4]float32) {
	style := tcell.StyleDefault.Background(toTcell(c))
	x0, y0 := int(math.Floor(float64(x))), int(math.Floor(float64(y)))
	x1, y1 := int(math.Ceil(float64(x+wd))), int(math.Ceil(float64(y+ht)))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			w.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// DrawText writes s at the given cell over whatever background is there.
func (w *termWindow) DrawText(x, y int, s string) {
	for _, r := range s {
		_, _, st, _ := w.screen.GetContent(x, y)
		w.screen.SetContent(x, y, r, nil, st.Foreground(tcell.ColorWhite))
		x++
	}
}

func toTcell(c colors.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(r, g, b)
}
