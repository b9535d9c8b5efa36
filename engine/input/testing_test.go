package input

import "github.com/hubastard/groveinput/engine/scene"

// recorder is a drawable that records every event it is offered.
type recorder struct {
	*scene.Base
	name   string
	events []Event
	handle func(Event) bool
}

func newRecorder(name string, x, y, w, h float32) *recorder {
	r := &recorder{name: name}
	r.Base = scene.NewBase(r)
	r.HandlePositional = true
	r.HandleNonPositional = true
	r.SetBounds(x, y, w, h)
	return r
}

func (r *recorder) Handle(e Event) bool {
	r.events = append(r.events, e)
	if r.handle != nil {
		return r.handle(e)
	}
	return false
}

func (r *recorder) reset() { r.events = nil }

func countEvents[E Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(E); ok {
			n++
		}
	}
	return n
}

func handleAll(Event) bool { return true }

func names(queue []scene.Drawable) []string {
	var out []string
	for _, d := range queue {
		switch d := d.(type) {
		case *recorder:
			out = append(out, d.name)
		case *PassThroughManager:
			out = append(out, "passthrough")
		default:
			out = append(out, "?")
		}
	}
	return out
}
