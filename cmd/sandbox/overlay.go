package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hubastard/groveinput/engine/core"
	"github.com/hubastard/groveinput/engine/stats"
)

// statsOverlay sums the frame counters and reports them once per interval.
type statsOverlay struct {
	interval time.Duration
	last     time.Time
	frames   int
	totals   stats.Frame
	lines    []string
}

func newStatsOverlay(interval time.Duration) *statsOverlay {
	return &statsOverlay{interval: interval, last: time.Now()}
}

// Frame records the counters of the previous frame. It reports whether a
// new summary is ready in Lines.
func (o *statsOverlay) Frame(e *core.Engine) bool {
	o.frames++
	for i, v := range e.LastFrame {
		o.totals[i] += v
	}
	now := time.Now()
	elapsed := now.Sub(o.last)
	if elapsed < o.interval {
		return false
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	o.lines = o.lines[:0]
	o.lines = append(o.lines,
		fmt.Sprintf("%.1f fps", float64(o.frames)/elapsed.Seconds()),
		fmt.Sprintf("commands %d (dropped %d)", o.totals.Get(stats.Commands), o.totals.Get(stats.DroppedCommands)),
		fmt.Sprintf("events %d", o.totals.Get(stats.Events)),
		fmt.Sprintf("mem %.2f MB, %d goroutines", float64(mem.HeapAlloc)/(1<<20), runtime.NumGoroutine()),
	)
	e.Log.Debug("frame stats",
		"frames", o.frames,
		"commands", o.totals.Get(stats.Commands),
		"mouse", o.totals.Get(stats.MouseEvents),
		"keys", o.totals.Get(stats.KeyEvents),
		"joystick", o.totals.Get(stats.JoystickEvents),
		"midi", o.totals.Get(stats.MidiEvents),
		"tablet", o.totals.Get(stats.TabletEvents),
	)
	for _, s := range stats.Snapshot() {
		e.Log.Debug("counter", "group", s.Group, "name", s.Name, "value", s.Value)
	}

	o.last = now
	o.frames = 0
	o.totals = stats.Frame{}
	return true
}

func (o *statsOverlay) Lines() []string { return o.lines }
