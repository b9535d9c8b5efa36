package input

// Command is a unit of input change. Apply mutates state and reports every
// effective change to h as an event. Transitions already reflected in state
// are ignored, so applying a command twice is harmless.
//
// The set of commands is closed; every variant lives in this file.
type Command interface {
	Apply(state *InputState, h ChangeHandler)
	isCommand()
}

type MousePositionAbsoluteInput struct {
	Position Vec2
	Source   Source
}

func (MousePositionAbsoluteInput) isCommand() {}

func (c MousePositionAbsoluteInput) Apply(state *InputState, h ChangeHandler) {
	m := &state.Mouse
	if m.IsPositionValid && m.Position == c.Position {
		return
	}
	var delta Vec2
	if m.IsPositionValid {
		delta = c.Position.Sub(m.Position)
	}
	m.Position = c.Position
	m.IsPositionValid = true
	m.LastSource = c.Source
	h.HandleStateChange(MouseMoveEvent{eventBase{state}, c.Position, delta})
}

type MousePositionRelativeInput struct {
	Delta  Vec2
	Source Source
}

func (MousePositionRelativeInput) isCommand() {}

func (c MousePositionRelativeInput) Apply(state *InputState, h ChangeHandler) {
	if c.Delta == (Vec2{}) {
		return
	}
	m := &state.Mouse
	m.Position = m.Position.Add(c.Delta)
	m.IsPositionValid = true
	m.LastSource = c.Source
	h.HandleStateChange(MouseMoveEvent{eventBase{state}, m.Position, c.Delta})
}

type MouseButtonInput struct {
	Entries []ButtonEntry[MouseButton]
	Source  Source
}

func NewMouseButtonInput(b MouseButton, pressed bool) MouseButtonInput {
	return MouseButtonInput{Entries: []ButtonEntry[MouseButton]{{b, pressed}}}
}

func (MouseButtonInput) isCommand() {}

func (c MouseButtonInput) Apply(state *InputState, h ChangeHandler) {
	for _, e := range c.Entries {
		if !e.Button.Valid() || !state.Mouse.Buttons.SetPressed(e.Button, e.Pressed) {
			continue
		}
		state.Mouse.LastSource = c.Source
		if e.Pressed {
			h.HandleStateChange(MouseDownEvent{eventBase{state}, e.Button})
		} else {
			h.HandleStateChange(MouseUpEvent{eventBase{state}, e.Button})
		}
	}
}

// MouseScrollRelativeInput is a scroll delta. Unlike button input it carries
// no state to compare against, so every non-zero delta produces an event.
type MouseScrollRelativeInput struct {
	Delta   Vec2
	Precise bool
	Source  Source
}

func (MouseScrollRelativeInput) isCommand() {}

func (c MouseScrollRelativeInput) Apply(state *InputState, h ChangeHandler) {
	if c.Delta == (Vec2{}) {
		return
	}
	state.Mouse.Scroll = state.Mouse.Scroll.Add(c.Delta)
	state.Mouse.LastSource = c.Source
	h.HandleStateChange(ScrollEvent{eventBase{state}, c.Delta, c.Precise})
}

// TouchInput activates or deactivates a set of touches. Activating an
// already active touch moves it.
type TouchInput struct {
	Touches  []Touch
	Activate bool
}

func (TouchInput) isCommand() {}

func (c TouchInput) Apply(state *InputState, h ChangeHandler) {
	t := &state.Touch
	for _, touch := range c.Touches {
		if !touch.Source.Valid() {
			continue
		}
		if c.Activate {
			changed := t.Active.SetPressed(touch.Source, true)
			if !changed && t.Positions[touch.Source] == touch.Position {
				continue
			}
			t.Positions[touch.Source] = touch.Position
		} else if !t.Active.SetPressed(touch.Source, false) {
			continue
		}
		h.HandleStateChange(TouchEvent{eventBase{state}, touch, c.Activate})
	}
}

type KeyboardKeyInput struct {
	Key     Key
	Pressed bool
}

func (KeyboardKeyInput) isCommand() {}

func (c KeyboardKeyInput) Apply(state *InputState, h ChangeHandler) {
	if !c.Key.Valid() || !state.Keyboard.Keys.SetPressed(c.Key, c.Pressed) {
		return
	}
	if c.Pressed {
		h.HandleStateChange(KeyDownEvent{eventBase{state}, c.Key})
	} else {
		h.HandleStateChange(KeyUpEvent{eventBase{state}, c.Key})
	}
}

type JoystickButtonInput struct {
	Entries []ButtonEntry[JoystickButton]
}

func NewJoystickButtonInput(b JoystickButton, pressed bool) JoystickButtonInput {
	return JoystickButtonInput{Entries: []ButtonEntry[JoystickButton]{{b, pressed}}}
}

func (JoystickButtonInput) isCommand() {}

func (c JoystickButtonInput) Apply(state *InputState, h ChangeHandler) {
	for _, e := range c.Entries {
		if !e.Button.Valid() || !state.Joystick.Buttons.SetPressed(e.Button, e.Pressed) {
			continue
		}
		h.HandleStateChange(JoystickButtonEvent{eventBase{state}, e.Button, e.Pressed})
	}
}

// JoystickAxisInput sets axis values. Only axes whose value changes produce
// events.
type JoystickAxisInput struct {
	Axes []JoystickAxis
}

func (JoystickAxisInput) isCommand() {}

func (c JoystickAxisInput) Apply(state *InputState, h ChangeHandler) {
	for _, a := range c.Axes {
		if a.Index < 0 || a.Index >= MaxJoystickAxes {
			continue
		}
		last := state.Joystick.Axes[a.Index]
		if last == a.Value {
			continue
		}
		state.Joystick.Axes[a.Index] = a.Value
		h.HandleStateChange(JoystickAxisMoveEvent{eventBase{state}, a, last})
	}
}

type MidiKeyInput struct {
	Key      MidiKey
	Velocity byte
	Pressed  bool
}

func (MidiKeyInput) isCommand() {}

func (c MidiKeyInput) Apply(state *InputState, h ChangeHandler) {
	if !c.Key.Valid() {
		return
	}
	m := &state.Midi
	if m.Velocities == nil {
		m.Velocities = map[MidiKey]byte{}
	}
	if c.Pressed {
		if !m.Keys.SetPressed(c.Key, true) {
			return
		}
		m.Velocities[c.Key] = c.Velocity
	} else if !m.Keys.SetPressed(c.Key, false) {
		return
	}
	h.HandleStateChange(MidiEvent{eventBase{state}, c.Key, c.Velocity, c.Pressed})
}

type TabletPenButtonInput struct {
	Entries []ButtonEntry[TabletPenButton]
}

func NewTabletPenButtonInput(b TabletPenButton, pressed bool) TabletPenButtonInput {
	return TabletPenButtonInput{Entries: []ButtonEntry[TabletPenButton]{{b, pressed}}}
}

func (TabletPenButtonInput) isCommand() {}

func (c TabletPenButtonInput) Apply(state *InputState, h ChangeHandler) {
	for _, e := range c.Entries {
		if !e.Button.Valid() || !state.Tablet.PenButtons.SetPressed(e.Button, e.Pressed) {
			continue
		}
		h.HandleStateChange(TabletPenButtonEvent{eventBase{state}, e.Button, e.Pressed})
	}
}

type TabletAuxButtonInput struct {
	Entries []ButtonEntry[TabletAuxButton]
}

func NewTabletAuxButtonInput(b TabletAuxButton, pressed bool) TabletAuxButtonInput {
	return TabletAuxButtonInput{Entries: []ButtonEntry[TabletAuxButton]{{b, pressed}}}
}

func (TabletAuxButtonInput) isCommand() {}

func (c TabletAuxButtonInput) Apply(state *InputState, h ChangeHandler) {
	for _, e := range c.Entries {
		if !e.Button.Valid() || !state.Tablet.AuxButtons.SetPressed(e.Button, e.Pressed) {
			continue
		}
		h.HandleStateChange(TabletAuxButtonEvent{eventBase{state}, e.Button, e.Pressed})
	}
}
