// Package tablet turns pen tablet reports into input commands.
package tablet

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/stats"
)

// initJoinTimeout bounds how long disabling waits for a pending driver
// start.
var initJoinTimeout = 2 * time.Second

// Handler is an absolute-pointer device handler for pen tablets. The pen
// tip moves the mouse and presses the left button, barrel and express keys
// become tablet button input.
type Handler struct {
	input.DeviceBase

	// AreaOffset is the centre of the used digitizer area in millimetres.
	AreaOffset *bindable.Bindable[input.Vec2]
	// AreaSize is the used digitizer area in millimetres.
	AreaSize *bindable.Bindable[input.Vec2]
	// OutputAreaPosition places the output area inside the window, in [0,1].
	OutputAreaPosition *bindable.Bindable[input.Vec2]
	// OutputAreaSize is the fraction of the window mapped to.
	OutputAreaSize *bindable.Bindable[input.Vec2]
	// Rotation of the input area in degrees.
	Rotation *bindable.Bindable[float32]

	tablet *bindable.Bindable[Info]
	window *bindable.Bindable[input.Vec2]

	newDriver func() Driver
	log       *slog.Logger
	total     *stats.Counter

	mu       sync.Mutex
	sink     input.Sink
	driver   Driver
	device   *Device
	in, out  Area
	running  bool
	initDone chan struct{}
	subs     []bindable.Subscription
}

type Option func(*Handler)

// WithDriver replaces the platform driver.
func WithDriver(newDriver func() Driver) Option {
	return func(h *Handler) { h.newDriver = newDriver }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// New returns a handler mapping into a window whose client size is
// tracked by window.
func New(window *bindable.Bindable[input.Vec2], opts ...Option) *Handler {
	h := &Handler{
		DeviceBase:         input.NewDeviceBase(true),
		AreaOffset:         bindable.New(input.Vec2{}),
		AreaSize:           bindable.New(input.Vec2{}),
		OutputAreaPosition: bindable.New(input.Vec2{X: 0.5, Y: 0.5}),
		OutputAreaSize:     bindable.New(input.Vec2{X: 1, Y: 1}),
		Rotation:           bindable.New[float32](0),
		tablet:             bindable.New(Info{}),
		window:             window,
		newDriver:          newPlatformDriver,
		log:                slog.Default(),
	}
	h.total = stats.Get(stats.GroupFor(h), "Total events")
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) Description() string { return "Tablet" }

// Tablet reports the detected tablet. The zero Info means none.
func (h *Handler) Tablet() *bindable.Bindable[Info] { return h.tablet }

func (h *Handler) IsActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.driver != nil
}

func (h *Handler) Initialize(sink input.Sink) error {
	h.mu.Lock()
	h.sink = sink
	h.mu.Unlock()

	updateInput := func(bindable.ValueChanged[input.Vec2]) { h.updateInputArea() }
	updateOutput := func(bindable.ValueChanged[input.Vec2]) { h.updateOutputArea() }
	h.subs = append(h.subs,
		h.AreaOffset.OnChange(updateInput, false),
		h.AreaSize.OnChange(updateInput, false),
		h.Rotation.OnChange(func(bindable.ValueChanged[float32]) { h.updateInputArea() }, true),
		h.OutputAreaPosition.OnChange(updateOutput, false),
		h.OutputAreaSize.OnChange(updateOutput, false),
		h.window.OnChange(updateOutput, true),
		h.Enabled().OnChange(func(c bindable.ValueChanged[bool]) { h.setEnabled(c.New) }, true),
	)
	return nil
}

// setEnabled starts the driver on a background goroutine or stops it.
func (h *Handler) setEnabled(enabled bool) {
	if enabled {
		done := make(chan struct{})
		h.mu.Lock()
		h.running = true
		h.initDone = done
		h.mu.Unlock()
		go h.start(done)
		return
	}
	h.stop()
}

func (h *Handler) start(done chan struct{}) {
	defer close(done)
	d := h.newDriver()
	if err := d.Start(h); err != nil {
		if errors.Is(err, ErrNoTablet) {
			h.log.Info("no tablet detected")
		} else {
			h.log.Warn("tablet driver failed to start", "err", err)
		}
		d.Close()
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running || h.initDone != done {
		// Disabled while starting, or superseded by a later enable.
		go d.Close()
		return
	}
	h.driver = d
}

// stop blocks further commands, waits a bounded time for a pending start and
// then releases the driver.
func (h *Handler) stop() {
	h.mu.Lock()
	h.running = false
	done := h.initDone
	h.initDone = nil
	h.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(initJoinTimeout):
			h.log.Warn("tablet driver start did not finish in time")
		}
	}

	h.mu.Lock()
	d := h.driver
	h.driver = nil
	h.mu.Unlock()
	if d != nil {
		if err := d.Close(); err != nil {
			h.log.Warn("tablet driver close failed", "err", err)
		}
	}
}

// Close unsubscribes from every bindable and stops the driver.
func (h *Handler) Close() error {
	for _, s := range h.subs {
		s.Unsubscribe()
	}
	h.subs = nil
	h.stop()
	return nil
}

// TabletsChanged implements Listener.
func (h *Handler) TabletsChanged(devices []Device) {
	h.mu.Lock()
	h.device = nil
	for i := range devices {
		if devices[i].Digitizer != (input.Vec2{}) {
			h.device = &devices[i]
			break
		}
	}
	dev := h.device
	h.mu.Unlock()

	if dev == nil {
		h.tablet.Set(Info{})
		return
	}
	h.log.Info("tablet detected", "name", dev.Name, "width", dev.Digitizer.X, "height", dev.Digitizer.Y)
	h.updateInputArea()
	h.updateOutputArea()
}

// updateInputArea adopts the detected digitizer as the default area and
// uses it wherever the user has not configured one.
func (h *Handler) updateInputArea() {
	h.mu.Lock()
	dev := h.device
	h.mu.Unlock()
	if dev == nil {
		return
	}

	size := dev.Digitizer
	h.AreaSize.SetDefault(size)
	if h.AreaSize.Value() == (input.Vec2{}) {
		h.AreaSize.ResetToDefault()
	}
	h.AreaOffset.SetDefault(input.Vec2{X: size.X / 2, Y: size.Y / 2})
	if h.AreaOffset.Value() == (input.Vec2{}) {
		h.AreaOffset.ResetToDefault()
	}
	h.tablet.Set(Info{Name: dev.Name, Size: size})

	h.mu.Lock()
	h.in = Area{Position: h.AreaOffset.Value(), Size: h.AreaSize.Value(), Rotation: h.Rotation.Value()}
	h.mu.Unlock()
}

func (h *Handler) updateOutputArea() {
	out := OutputArea(h.window.Value(), h.OutputAreaPosition.Value(), h.OutputAreaSize.Value())
	h.mu.Lock()
	h.out = out
	h.mu.Unlock()
}

// DeviceReported implements Listener.
func (h *Handler) DeviceReported(r Report) {
	switch r := r.(type) {
	case PenReport:
		h.mu.Lock()
		in, out := h.in, h.out
		h.mu.Unlock()
		h.enqueue(input.MousePositionAbsoluteInput{Position: Map(in, out, r.Position), Source: input.SourceTablet})
		h.enqueue(input.MouseButtonInput{
			Entries: []input.ButtonEntry[input.MouseButton]{{Button: input.MouseLeft, Pressed: r.Pressure > 0}},
			Source:  input.SourceTablet,
		})
		h.enqueue(input.TabletPenButtonInput{Entries: penEntries(r.Buttons)})
	case AuxReport:
		h.enqueue(input.TabletAuxButtonInput{Entries: auxEntries(r.Buttons)})
	}
}

func penEntries(buttons []bool) []input.ButtonEntry[input.TabletPenButton] {
	n := min(len(buttons), input.MaxTabletPenButtons)
	out := make([]input.ButtonEntry[input.TabletPenButton], n)
	for i := range out {
		out[i] = input.ButtonEntry[input.TabletPenButton]{Button: input.TabletPenButton(i), Pressed: buttons[i]}
	}
	return out
}

func auxEntries(buttons []bool) []input.ButtonEntry[input.TabletAuxButton] {
	n := min(len(buttons), input.MaxTabletAuxButtons)
	out := make([]input.ButtonEntry[input.TabletAuxButton], n)
	for i := range out {
		out[i] = input.ButtonEntry[input.TabletAuxButton]{Button: input.TabletAuxButton(i), Pressed: buttons[i]}
	}
	return out
}

func (h *Handler) enqueue(c input.Command) {
	h.mu.Lock()
	sink, running := h.sink, h.running
	h.mu.Unlock()
	if !running || sink == nil {
		return
	}
	sink.Enqueue(c)
	stats.Increment(stats.TabletEvents)
	h.total.Increment()
}
