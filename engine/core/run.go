package core

import (
	"log/slog"
	"time"

	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/scene"
	"github.com/hubastard/groveinput/engine/stats"
)

// Run executes the main loop. The caller owns the window. Every fixed tick
// updates the drawable tree under root, which applies pending input, then
// the app.
func Run(app App, cfg Config, win Window, root *input.Manager) error {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	eng := &Engine{Window: win, Input: root, Log: log, start: time.Now()}

	// Drawables must not keep state from a window they no longer see.
	win.SetFocusLostCallback(root.BroadcastFocusLost)

	app.OnStart(eng)

	// Fixed-timestep with interpolation
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	tick := time.Second / time.Duration(rate)
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !eng.quit && !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (handlers enqueue commands from callbacks)
		win.PollEvents()
		for _, d := range root.Devices() {
			if p, ok := d.(Poller); ok {
				p.Poll()
			}
		}

		steps := 0
		for accum >= tick && steps < maxStep {
			scene.UpdateSubTree(root)
			app.OnUpdate(eng, tick.Seconds())
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		win.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		win.SwapBuffers()

		eng.LastFrame = stats.EndFrame()
	}

	app.OnShutdown(eng)
	if err := root.Close(); err != nil {
		log.Warn("closing input devices", "err", err)
	}
	log.Info("engine exit", "uptime", eng.Uptime())
	return nil
}
