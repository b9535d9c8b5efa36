package core

import (
	"testing"
	"time"

	"github.com/hubastard/groveinput/engine/input"
)

type fakeWindow struct {
	frames, maxFrames int
	focusLost         func()
	cleared           bool
}

func (w *fakeWindow) PollEvents()                    {}
func (w *fakeWindow) SwapBuffers()                   { w.frames++; time.Sleep(2 * time.Millisecond) }
func (w *fakeWindow) ShouldClose() bool              { return w.frames >= w.maxFrames }
func (w *fakeWindow) Clear(r, g, b, a float32)       { w.cleared = true }
func (w *fakeWindow) SetFocusLostCallback(fn func()) { w.focusLost = fn }

type countingApp struct {
	started, updates, renders, shutdowns int
	quitAfter                            int
}

func (a *countingApp) OnStart(*Engine) { a.started++ }
func (a *countingApp) OnUpdate(e *Engine, _ float64) {
	a.updates++
	if a.quitAfter > 0 && a.updates >= a.quitAfter {
		e.Quit()
	}
}
func (a *countingApp) OnRender(*Engine, float64) { a.renders++ }
func (a *countingApp) OnShutdown(*Engine)        { a.shutdowns++ }

type pollDevice struct {
	input.DeviceBase
	sink   input.Sink
	polls  int
	closed bool
}

func (d *pollDevice) Description() string { return "poll" }
func (d *pollDevice) Initialize(s input.Sink) error {
	d.sink = s
	return nil
}
func (d *pollDevice) IsActive() bool { return true }
func (d *pollDevice) Close() error   { d.closed = true; return nil }
func (d *pollDevice) Poll() {
	d.polls++
	if d.polls == 1 {
		d.sink.Enqueue(input.KeyboardKeyInput{Key: input.KeyEnter, Pressed: true})
	}
}

func TestRun(t *testing.T) {
	win := &fakeWindow{maxFrames: 5}
	root := input.NewManager()
	dev := &pollDevice{DeviceBase: input.NewDeviceBase(true)}
	if err := root.AddDevice(dev); err != nil {
		t.Fatal(err)
	}
	app := &countingApp{}

	if err := Run(app, Config{TickRate: 1000}, win, root); err != nil {
		t.Fatal(err)
	}

	if app.started != 1 || app.shutdowns != 1 {
		t.Errorf("start/shutdown = %d/%d, want 1/1", app.started, app.shutdowns)
	}
	if app.renders != 5 || dev.polls != 5 {
		t.Errorf("renders = %d, polls = %d, want 5 each", app.renders, dev.polls)
	}
	if app.updates == 0 {
		t.Error("no fixed update ran")
	}
	if !root.State().Keyboard.IsPressed(input.KeyEnter) {
		t.Error("polled input never reached the root manager")
	}
	if !dev.closed {
		t.Error("devices not closed on exit")
	}
	if win.focusLost == nil || !win.cleared {
		t.Error("window not wired")
	}
}

func TestRun_Quit(t *testing.T) {
	win := &fakeWindow{maxFrames: 1 << 30}
	app := &countingApp{quitAfter: 3}
	if err := Run(app, Config{TickRate: 1000}, win, input.NewManager()); err != nil {
		t.Fatal(err)
	}
	if app.updates < 3 {
		t.Errorf("updates = %d, want at least 3", app.updates)
	}
}
