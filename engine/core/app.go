package core

import (
	"log/slog"
	"time"

	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/stats"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)                 // called once before the first frame
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	// Input is the root of the drawable tree and owns the devices.
	Input *input.Manager
	Log   *slog.Logger

	// LastFrame holds the frame counters of the previous frame.
	LastFrame stats.Frame

	start time.Time
	quit  bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Quit ends the loop after the current frame.
func (e *Engine) Quit() { e.quit = true }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	Clear(r, g, b, a float32)
	SetFocusLostCallback(fn func())
}

// Poller is implemented by device handlers without input callbacks. They are
// polled once per frame after the window events.
type Poller interface {
	Poll()
}

// Config for the engine run.
type Config struct {
	ClearColor [4]float32 // RGBA
	// TickRate is the number of fixed updates per second. Zero means 60.
	TickRate int
	Logger   *slog.Logger
}
