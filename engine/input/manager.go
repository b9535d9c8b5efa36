package input

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/hubastard/groveinput/engine/scene"
	"github.com/hubastard/groveinput/engine/stats"
)

// Manager owns an InputState and routes the events produced by changes to
// it into its subtree. Commands may be enqueued from any goroutine; Update,
// queue building and dispatch run on the update goroutine only.
//
// A Manager nested below another manager is an input island: it contributes
// nothing to the ancestor's queues and blocks traversal into its children.
type Manager struct {
	*scene.Base

	state   *InputState
	pending pendingQueue
	devices []DeviceHandler
	log     *slog.Logger

	// suppressPending, when it returns true, drops drained commands
	// unapplied.
	suppressPending func() bool

	buttons [mouseButtonCount]*buttonCapture
	focused scene.Drawable
}

// buttonCapture remembers who saw a mouse button go down so the matching
// up and drag events reach the same drawables.
type buttonCapture struct {
	queue        []scene.Drawable
	handler      scene.Drawable
	downPosition Vec2
	dragging     bool
	dragRejected bool
}

type Option func(*Manager)

// WithLogger sets the logger used by the manager and its device handlers.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := newManager(opts)
	m.Base = scene.NewBase(m)
	return m
}

func newManager(opts []Option) *Manager {
	m := &Manager{state: NewInputState(), log: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) inputManager() *Manager { return m }

// State is the manager's current input state. Callers must treat it as
// read-only and only use it on the update goroutine.
func (m *Manager) State() *InputState { return m.state }

func (m *Manager) Logger() *slog.Logger { return m.log }

// Enqueue queues c for the next Update. Safe from any goroutine.
func (m *Manager) Enqueue(c Command) {
	m.pending.Push(c)
}

// Pending reports how many commands wait for the next Update.
func (m *Manager) Pending() int { return m.pending.Len() }

// AddDevice initializes h with the manager as its sink. A failing handler is
// kept but stays inactive; the error is logged and returned.
func (m *Manager) AddDevice(h DeviceHandler) error {
	m.devices = append(m.devices, h)
	if err := h.Initialize(m); err != nil {
		m.log.Warn("input device failed to initialize", "device", h.Description(), "err", err)
		return err
	}
	m.log.Debug("input device added", "device", h.Description(), "active", h.IsActive())
	return nil
}

func (m *Manager) Devices() []DeviceHandler { return m.devices }

// Close shuts down every device handler.
func (m *Manager) Close() error {
	var errs []error
	for _, h := range m.devices {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.devices = nil
	return errors.Join(errs...)
}

// Update drains the pending commands and applies them in arrival order.
func (m *Manager) Update() {
	cmds := m.pending.Drain()
	if m.suppressPending != nil && m.suppressPending() {
		for range cmds {
			stats.Increment(stats.DroppedCommands)
		}
		return
	}
	for _, c := range cmds {
		m.apply(c)
	}
}

func (m *Manager) apply(c Command) {
	stats.Increment(stats.Commands)
	c.Apply(m.state, m)
}

// -------- queues --------

// PositionalQueue returns the drawables below the manager that accept
// positional input at pos, front-most first.
func (m *Manager) PositionalQueue(pos Vec2) []scene.Drawable {
	return scene.PositionalQueue(m.Owner(), pos, nil)
}

// NonPositionalQueue returns the drawables below the manager that accept
// non-positional input, front-most first. With allowBlocking false, nested
// managers are traversed as well.
func (m *Manager) NonPositionalQueue(allowBlocking bool) []scene.Drawable {
	return scene.NonPositionalQueue(m.Owner(), allowBlocking, nil)
}

// BuildPositionalQueue keeps ancestors from routing positional input into
// the manager's subtree.
func (m *Manager) BuildPositionalQueue(pos Vec2, queue []scene.Drawable) ([]scene.Drawable, bool) {
	return queue, false
}

func (m *Manager) BuildNonPositionalQueue(queue []scene.Drawable, allowBlocking bool) ([]scene.Drawable, bool) {
	if allowBlocking {
		return queue, false
	}
	return m.buildSubTreeNonPositional(queue)
}

func (m *Manager) buildSubTreeNonPositional(queue []scene.Drawable) ([]scene.Drawable, bool) {
	queue, recurse := m.Base.BuildNonPositionalQueue(queue, false)
	if !recurse {
		return queue, false
	}
	for _, c := range m.Children() {
		queue = scene.WalkNonPositional(c, false, queue)
	}
	return queue, false
}

// -------- dispatch --------

// HandleStateChange routes an event produced by a command to the subtree.
func (m *Manager) HandleStateChange(e Event) {
	stats.Increment(stats.Events)
	switch e := e.(type) {
	case MouseMoveEvent:
		stats.Increment(stats.MouseEvents)
		m.dispatch(m.PositionalQueue(e.Position), e)
		m.updateDrags(e)
	case MouseDownEvent:
		stats.Increment(stats.MouseEvents)
		m.handleMouseDown(e)
	case MouseUpEvent:
		stats.Increment(stats.MouseEvents)
		m.handleMouseUp(e)
	case ScrollEvent:
		stats.Increment(stats.MouseEvents)
		m.dispatch(m.PositionalQueue(m.state.Mouse.Position), e)
	case TouchEvent:
		stats.Increment(stats.TouchEvents)
		if m.dispatch(m.PositionalQueue(e.Touch.Position), e) == nil && e.Touch.Source == 0 {
			m.emulateMouse(e)
		}
	case KeyDownEvent, KeyUpEvent:
		stats.Increment(stats.KeyEvents)
		m.dispatchNonPositional(e)
	case JoystickButtonEvent, JoystickAxisMoveEvent:
		stats.Increment(stats.JoystickEvents)
		m.dispatchNonPositional(e)
	case MidiEvent:
		stats.Increment(stats.MidiEvents)
		m.dispatchNonPositional(e)
	case TabletPenButtonEvent, TabletAuxButtonEvent:
		stats.Increment(stats.TabletEvents)
		m.dispatchNonPositional(e)
	default:
		m.dispatchNonPositional(e)
	}
}

// dispatch delivers e along queue until a drawable handles it and returns
// that drawable.
func (m *Manager) dispatch(queue []scene.Drawable, e Event) scene.Drawable {
	for _, d := range queue {
		if deliver(d, e) {
			return d
		}
	}
	return nil
}

func deliver(d scene.Drawable, e Event) bool {
	h, ok := d.(Handler)
	return ok && h.Handle(e)
}

func (m *Manager) dispatchNonPositional(e Event) {
	queue := m.NonPositionalQueue(true)
	if f := m.focused; f != nil {
		if deliver(f, e) {
			return
		}
		queue = slices.DeleteFunc(queue, func(d scene.Drawable) bool { return d == f })
	}
	m.dispatch(queue, e)
}

func (m *Manager) handleMouseDown(e MouseDownEvent) {
	queue := m.PositionalQueue(m.state.Mouse.Position)
	handler := m.dispatch(queue, e)
	m.buttons[e.Button] = &buttonCapture{
		queue:        queue,
		handler:      handler,
		downPosition: m.state.Mouse.Position,
	}
}

func (m *Manager) handleMouseUp(e MouseUpEvent) {
	c := m.buttons[e.Button]
	m.buttons[e.Button] = nil
	if c == nil {
		m.dispatch(m.PositionalQueue(m.state.Mouse.Position), e)
		return
	}
	m.dispatch(c.queue, e)
	if c.dragging {
		deliver(c.handler, DragEndEvent{eventBase{e.state}, e.Button})
	}
}

func (m *Manager) updateDrags(e MouseMoveEvent) {
	for b, c := range m.buttons {
		if c == nil || c.handler == nil || c.dragRejected {
			continue
		}
		button := MouseButton(b)
		if !c.dragging {
			if deliver(c.handler, DragStartEvent{eventBase{e.state}, button, c.downPosition}) {
				c.dragging = true
			} else {
				c.dragRejected = true
			}
			continue
		}
		deliver(c.handler, DragEvent{eventBase{e.state}, button, e.Delta})
	}
}

// emulateMouse mirrors an unhandled primary touch as left mouse input
// tagged with SourceTouch.
func (m *Manager) emulateMouse(e TouchEvent) {
	m.apply(MousePositionAbsoluteInput{Position: e.Touch.Position, Source: SourceTouch})
	m.apply(MouseButtonInput{
		Entries: []ButtonEntry[MouseButton]{{MouseLeft, e.Active}},
		Source:  SourceTouch,
	})
}

// -------- focus --------

func (m *Manager) Focused() scene.Drawable { return m.focused }

// ChangeFocus moves keyboard focus to d, which may be nil. It reports
// whether focus changed.
func (m *Manager) ChangeFocus(d scene.Drawable) bool {
	if d == m.focused {
		return false
	}
	old := m.focused
	m.focused = d
	if old != nil {
		deliver(old, FocusLostEvent{eventBase: eventBase{m.state}})
	}
	if d != nil {
		deliver(d, FocusEvent{eventBase{m.state}})
	}
	return true
}

// BroadcastFocusLost tells every drawable in the subtree, including those
// below nested managers, that the host window lost focus.
func (m *Manager) BroadcastFocusLost() {
	ev := FocusLostEvent{eventBase: eventBase{m.state}, Host: true}
	for _, d := range m.NonPositionalQueue(false) {
		deliver(d, ev)
	}
}

type inputOwner interface {
	scene.Drawable
	inputManager() *Manager
}

// ContainingManager returns the nearest manager above d, or nil.
func ContainingManager(d scene.Drawable) *Manager {
	p := scene.FindAncestor(d, func(a scene.Drawable) bool {
		_, ok := a.(inputOwner)
		return ok
	})
	if p == nil {
		return nil
	}
	return p.(inputOwner).inputManager()
}
