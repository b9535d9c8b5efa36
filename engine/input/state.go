package input

import (
	"maps"

	"github.com/hubastard/groveinput/engine/scene"
)

type Vec2 = scene.Vec2

// Source tags the producer of the most recent mouse input.
type Source uint8

const (
	SourceMouse Source = iota
	SourceTouch
	SourceTablet
	SourceTerminal
	SourcePassThrough
)

// FromTouch reports whether mouse input from this source was synthesised
// from a touch.
func (s Source) FromTouch() bool { return s == SourceTouch }

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	case SourceTablet:
		return "tablet"
	case SourceTerminal:
		return "terminal"
	case SourcePassThrough:
		return "passthrough"
	}
	return "unknown"
}

type MouseState struct {
	Position        Vec2
	IsPositionValid bool
	Buttons         ButtonStates[MouseButton]
	// Scroll is the accumulated scroll offset.
	Scroll     Vec2
	LastSource Source
}

func (m *MouseState) IsPressed(b MouseButton) bool { return m.Buttons.IsPressed(b) }

type KeyboardState struct {
	Keys ButtonStates[Key]
}

func (k *KeyboardState) IsPressed(key Key) bool { return k.Keys.IsPressed(key) }

// Touch is an active touch point.
type Touch struct {
	Source   TouchSource
	Position Vec2
}

type TouchState struct {
	Active    ButtonStates[TouchSource]
	Positions [MaxTouches]Vec2
}

func (t *TouchState) IsActive(s TouchSource) bool { return t.Active.IsPressed(s) }

// Touches returns the active touches ordered by source.
func (t *TouchState) Touches() []Touch {
	var out []Touch
	for _, s := range t.Active.Values() {
		out = append(out, Touch{Source: s, Position: t.Positions[s]})
	}
	return out
}

// TouchDiff reports the touches that must be activated and deactivated to
// turn previous into current. Touches active on both sides whose position
// changed are reported as activated.
func TouchDiff(previous, current *TouchState) (activated, deactivated []Touch) {
	var prevActive, curActive *ButtonStates[TouchSource]
	if previous != nil {
		prevActive = &previous.Active
	}
	if current != nil {
		curActive = &current.Active
	}
	d := Diff(prevActive, curActive)
	for _, s := range d.Released {
		deactivated = append(deactivated, Touch{Source: s, Position: previous.Positions[s]})
	}
	if current == nil {
		return activated, deactivated
	}
	for _, s := range current.Active.Values() {
		if previous != nil && previous.Active.IsPressed(s) && previous.Positions[s] == current.Positions[s] {
			continue
		}
		activated = append(activated, Touch{Source: s, Position: current.Positions[s]})
	}
	return activated, deactivated
}

type JoystickState struct {
	Buttons ButtonStates[JoystickButton]
	Axes    [MaxJoystickAxes]float32
}

// AxisVector returns every axis slot, including zeroed ones.
func (j *JoystickState) AxisVector() []JoystickAxis {
	out := make([]JoystickAxis, MaxJoystickAxes)
	for i, v := range j.Axes {
		out[i] = JoystickAxis{Index: i, Value: v}
	}
	return out
}

type MidiState struct {
	Keys       ButtonStates[MidiKey]
	Velocities map[MidiKey]byte
}

func (m *MidiState) Velocity(k MidiKey) byte { return m.Velocities[k] }

type TabletState struct {
	PenButtons ButtonStates[TabletPenButton]
	AuxButtons ButtonStates[TabletAuxButton]
}

// InputState is a snapshot of every device category owned by one manager.
type InputState struct {
	Mouse    MouseState
	Keyboard KeyboardState
	Touch    TouchState
	Joystick JoystickState
	Midi     MidiState
	Tablet   TabletState
}

func NewInputState() *InputState {
	return &InputState{Midi: MidiState{Velocities: map[MidiKey]byte{}}}
}

// Clone returns a deep copy that shares nothing with s.
func (s *InputState) Clone() *InputState {
	c := *s
	c.Mouse.Buttons = s.Mouse.Buttons.Clone()
	c.Keyboard.Keys = s.Keyboard.Keys.Clone()
	c.Touch.Active = s.Touch.Active.Clone()
	c.Joystick.Buttons = s.Joystick.Buttons.Clone()
	c.Midi.Keys = s.Midi.Keys.Clone()
	c.Midi.Velocities = maps.Clone(s.Midi.Velocities)
	if c.Midi.Velocities == nil {
		c.Midi.Velocities = map[MidiKey]byte{}
	}
	c.Tablet.PenButtons = s.Tablet.PenButtons.Clone()
	c.Tablet.AuxButtons = s.Tablet.AuxButtons.Clone()
	return &c
}
