package input

import (
	"weak"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/scene"
)

// PassThroughManager is a Manager that can mirror the input state of the
// nearest manager above it instead of reading its own devices.
//
// While UseParentInput is true:
//   - commands from its own devices are drained and dropped;
//   - it places itself in the ancestor's queues without exposing its
//     children, and receives the ancestor's events through Handle;
//   - once per frame, Sync reconciles every device category with the
//     ancestor's state.
//
// Mouse buttons are only ever pressed by a down event seen in Handle. Sync
// may release them but never presses them, so stale state can't produce a
// false click.
//
// While UseParentInput is false it behaves like a plain Manager.
type PassThroughManager struct {
	*Manager

	// UseParentInput selects pass-through mode. It defaults to true;
	// switching it on synchronises immediately.
	UseParentInput *bindable.Bindable[bool]

	parent weak.Pointer[Manager]
}

func NewPassThroughManager(opts ...Option) *PassThroughManager {
	pt := &PassThroughManager{
		Manager:        newManager(opts),
		UseParentInput: bindable.New(true),
	}
	pt.Base = scene.NewBase(pt)
	pt.suppressPending = pt.UseParentInput.Value
	pt.UseParentInput.OnChange(func(c bindable.ValueChanged[bool]) {
		if c.New {
			pt.Sync()
		}
	}, false)
	return pt
}

func (pt *PassThroughManager) BuildPositionalQueue(pos Vec2, queue []scene.Drawable) ([]scene.Drawable, bool) {
	if !pt.PropagatePositional {
		return queue, false
	}
	return append(queue, pt), false
}

func (pt *PassThroughManager) BuildNonPositionalQueue(queue []scene.Drawable, allowBlocking bool) ([]scene.Drawable, bool) {
	if !pt.PropagateNonPositional {
		return queue, false
	}
	if !allowBlocking {
		return pt.buildSubTreeNonPositional(queue)
	}
	return append(queue, pt), false
}

// Attached runs when pt or one of its ancestors gains a parent. It
// resolves the new ancestor and synchronises with it.
func (pt *PassThroughManager) Attached() { pt.Sync() }

// Detached runs when pt or one of its ancestors loses its parent. The cache
// keeps only an ancestor still above pt; without one the next Update
// releases everything held locally.
func (pt *PassThroughManager) Detached() { pt.resolveParent() }

// Update applies local commands (dropped in pass-through mode) and then
// reconciles with the cached ancestor.
func (pt *PassThroughManager) Update() {
	pt.Manager.Update()
	if pt.UseParentInput.Value() {
		pt.syncTo(pt.parentState())
	}
}

// Sync re-resolves the ancestor and reconciles the local state with its
// state. It returns the commands it applied. It does nothing unless
// UseParentInput is true.
func (pt *PassThroughManager) Sync() []Command {
	if !pt.UseParentInput.Value() {
		return nil
	}
	pt.resolveParent()
	return pt.syncTo(pt.parentState())
}

func (pt *PassThroughManager) resolveParent() {
	pt.parent = weak.Pointer[Manager]{}
	if p := ContainingManager(pt); p != nil {
		pt.parent = weak.Make(p)
	}
}

func (pt *PassThroughManager) parentState() *InputState {
	if p := pt.parent.Value(); p != nil {
		return p.state
	}
	return nil
}

func (pt *PassThroughManager) syncTo(parent *InputState) []Command {
	cmds := reconcile(pt.state, parent)
	for _, c := range cmds {
		pt.apply(c)
	}
	return cmds
}

// Handle treats events bubbling through the ancestor as incremental
// updates. It never handles an event, so bubbling continues.
func (pt *PassThroughManager) Handle(e Event) bool {
	if !pt.UseParentInput.Value() {
		return false
	}

	// A descendant may be handling the real touches; mouse input
	// synthesised from them would be counted twice.
	if IsMouseEvent(e) && e.CurrentState() != nil && e.CurrentState().Mouse.LastSource.FromTouch() {
		return false
	}

	local := pt.state
	switch e := e.(type) {
	case MouseMoveEvent:
		if !local.Mouse.IsPositionValid || local.Mouse.Position != e.Position {
			pt.apply(MousePositionAbsoluteInput{Position: e.Position, Source: SourcePassThrough})
		}
	case MouseDownEvent:
		if !local.Mouse.IsPressed(e.Button) {
			pt.apply(MouseButtonInput{Entries: []ButtonEntry[MouseButton]{{e.Button, true}}, Source: SourcePassThrough})
		}
	case MouseUpEvent:
		if local.Mouse.IsPressed(e.Button) {
			pt.apply(MouseButtonInput{Entries: []ButtonEntry[MouseButton]{{e.Button, false}}, Source: SourcePassThrough})
		}
	case ScrollEvent:
		pt.apply(MouseScrollRelativeInput{Delta: e.Delta, Precise: e.Precise, Source: SourcePassThrough})
	case TouchEvent:
		pt.apply(TouchInput{Touches: []Touch{e.Touch}, Activate: e.Active})
	case MidiEvent:
		pt.apply(MidiKeyInput{Key: e.Key, Velocity: e.Velocity, Pressed: e.Pressed})
	case KeyDownEvent, KeyUpEvent, JoystickButtonEvent, JoystickAxisMoveEvent,
		TabletPenButtonEvent, TabletAuxButtonEvent:
		// These need a full set comparison rather than a single edge.
		if s := e.CurrentState(); s != nil {
			pt.syncTo(s)
		}
	}
	return false
}

// reconcile returns the commands that bring local in line with parent, in
// category order: mouse buttons, keys, touches, joystick buttons, joystick
// axes, MIDI keys, tablet pen buttons, tablet aux buttons. A nil parent is an
// empty state. Mouse buttons are only released, never pressed.
func reconcile(local, parent *InputState) []Command {
	if parent == nil {
		parent = NewInputState()
	}
	var cmds []Command

	if d := Diff(&local.Mouse.Buttons, &parent.Mouse.Buttons); len(d.Released) > 0 {
		c := MouseButtonInput{Source: SourcePassThrough}
		for _, b := range d.Released {
			c.Entries = append(c.Entries, ButtonEntry[MouseButton]{b, false})
		}
		cmds = append(cmds, c)
	}

	keys := Diff(&local.Keyboard.Keys, &parent.Keyboard.Keys)
	for _, k := range keys.Released {
		cmds = append(cmds, KeyboardKeyInput{Key: k, Pressed: false})
	}
	for _, k := range keys.Pressed {
		cmds = append(cmds, KeyboardKeyInput{Key: k, Pressed: true})
	}

	activated, deactivated := TouchDiff(&local.Touch, &parent.Touch)
	if len(deactivated) > 0 {
		cmds = append(cmds, TouchInput{Touches: deactivated, Activate: false})
	}
	if len(activated) > 0 {
		cmds = append(cmds, TouchInput{Touches: activated, Activate: true})
	}

	joy := Diff(&local.Joystick.Buttons, &parent.Joystick.Buttons)
	for _, b := range joy.Released {
		cmds = append(cmds, NewJoystickButtonInput(b, false))
	}
	for _, b := range joy.Pressed {
		cmds = append(cmds, NewJoystickButtonInput(b, true))
	}

	// One command for the whole vector as soon as any axis differs.
	if local.Joystick.Axes != parent.Joystick.Axes {
		cmds = append(cmds, JoystickAxisInput{Axes: parent.Joystick.AxisVector()})
	}

	midi := Diff(&local.Midi.Keys, &parent.Midi.Keys)
	for _, k := range midi.Released {
		cmds = append(cmds, MidiKeyInput{Key: k, Velocity: local.Midi.Velocity(k), Pressed: false})
	}
	for _, k := range midi.Pressed {
		cmds = append(cmds, MidiKeyInput{Key: k, Velocity: parent.Midi.Velocity(k), Pressed: true})
	}

	pen := Diff(&local.Tablet.PenButtons, &parent.Tablet.PenButtons)
	for _, b := range pen.Released {
		cmds = append(cmds, NewTabletPenButtonInput(b, false))
	}
	for _, b := range pen.Pressed {
		cmds = append(cmds, NewTabletPenButtonInput(b, true))
	}

	aux := Diff(&local.Tablet.AuxButtons, &parent.Tablet.AuxButtons)
	for _, b := range aux.Released {
		cmds = append(cmds, NewTabletAuxButtonInput(b, false))
	}
	for _, b := range aux.Pressed {
		cmds = append(cmds, NewTabletAuxButtonInput(b, true))
	}

	return cmds
}
