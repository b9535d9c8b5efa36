package input

// Event is a UI event dispatched to drawables. The set of events is closed;
// every variant lives in this file.
type Event interface {
	// CurrentState is the state of the dispatching manager, already
	// updated with the change that produced the event.
	CurrentState() *InputState
	isEvent()
}

type eventBase struct{ state *InputState }

func (b eventBase) CurrentState() *InputState { return b.state }
func (eventBase) isEvent()                    {}

type MouseMoveEvent struct {
	eventBase
	Position Vec2
	Delta    Vec2
}

type MouseDownEvent struct {
	eventBase
	Button MouseButton
}

type MouseUpEvent struct {
	eventBase
	Button MouseButton
}

type ScrollEvent struct {
	eventBase
	Delta   Vec2
	Precise bool
}

type DragStartEvent struct {
	eventBase
	Button       MouseButton
	DownPosition Vec2
}

type DragEvent struct {
	eventBase
	Button MouseButton
	Delta  Vec2
}

type DragEndEvent struct {
	eventBase
	Button MouseButton
}

type TouchEvent struct {
	eventBase
	Touch  Touch
	Active bool
}

type KeyDownEvent struct {
	eventBase
	Key Key
}

type KeyUpEvent struct {
	eventBase
	Key Key
}

type JoystickButtonEvent struct {
	eventBase
	Button  JoystickButton
	Pressed bool
}

type JoystickAxisMoveEvent struct {
	eventBase
	Axis      JoystickAxis
	LastValue float32
}

type MidiEvent struct {
	eventBase
	Key      MidiKey
	Velocity byte
	Pressed  bool
}

type TabletPenButtonEvent struct {
	eventBase
	Button  TabletPenButton
	Pressed bool
}

type TabletAuxButtonEvent struct {
	eventBase
	Button  TabletAuxButton
	Pressed bool
}

// FocusEvent is delivered to a drawable that gained focus.
type FocusEvent struct {
	eventBase
}

// FocusLostEvent is delivered to a drawable that lost focus. Host is set
// when the whole window lost focus and the event is broadcast.
type FocusLostEvent struct {
	eventBase
	Host bool
}

// IsMouseEvent reports whether e describes mouse input.
func IsMouseEvent(e Event) bool {
	switch e.(type) {
	case MouseMoveEvent, MouseDownEvent, MouseUpEvent, ScrollEvent,
		DragStartEvent, DragEvent, DragEndEvent:
		return true
	}
	return false
}

// IsPositional reports whether e is routed by screen position.
func IsPositional(e Event) bool {
	if IsMouseEvent(e) {
		return true
	}
	_, ok := e.(TouchEvent)
	return ok
}

// Handler is implemented by drawables that consume events. Handle reports
// whether the event was handled, which stops propagation.
type Handler interface {
	Handle(e Event) bool
}

// ChangeHandler receives the events produced by applying a command.
type ChangeHandler interface {
	HandleStateChange(e Event)
}
