package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/groveinput/engine/input"
)

// hatDirections maps the hat bits to the JoystickHat direction order.
var hatDirections = [4]glfw.JoystickHatState{glfw.HatUp, glfw.HatRight, glfw.HatDown, glfw.HatLeft}

type joystickSnapshot struct {
	buttons [input.MaxJoystickButtons + input.MaxJoystickHats*4]bool
	axes    [input.MaxJoystickAxes]float32
}

// JoystickHandler polls the first joystick once per frame. GLFW has no
// joystick input callbacks, only connection ones.
type JoystickHandler struct {
	input.DeviceBase
	joy  glfw.Joystick
	sink input.Sink
	last joystickSnapshot
}

func NewJoystickHandler() *JoystickHandler {
	return &JoystickHandler{DeviceBase: input.NewDeviceBase(true), joy: glfw.Joystick1}
}

func (h *JoystickHandler) Description() string { return "Joystick" }
func (h *JoystickHandler) IsActive() bool      { return h.sink != nil && h.joy.Present() }

func (h *JoystickHandler) Initialize(sink input.Sink) error {
	h.sink = sink
	return nil
}

func (h *JoystickHandler) Close() error {
	h.sink = nil
	return nil
}

// Poll enqueues the changes since the previous poll. A disconnected or
// disabled joystick reads as released.
func (h *JoystickHandler) Poll() {
	if h.sink == nil {
		return
	}
	var cur joystickSnapshot
	if h.Enabled().Value() && h.joy.Present() {
		for i, a := range h.joy.GetButtons() {
			if i < input.MaxJoystickButtons {
				cur.buttons[i] = a != glfw.Release
			}
		}
		for hat, s := range h.joy.GetHats() {
			if hat >= input.MaxJoystickHats {
				break
			}
			for dir, bit := range hatDirections {
				cur.buttons[input.JoystickHat(hat, dir)] = s&bit != 0
			}
		}
		for i, v := range h.joy.GetAxes() {
			if i < input.MaxJoystickAxes {
				cur.axes[i] = v
			}
		}
	}

	for _, c := range joystickCommands(&h.last, &cur) {
		h.sink.Enqueue(c)
	}
	h.last = cur
}

func joystickCommands(prev, cur *joystickSnapshot) []input.Command {
	var cmds []input.Command
	var buttons input.JoystickButtonInput
	for i := range cur.buttons {
		if prev.buttons[i] != cur.buttons[i] {
			buttons.Entries = append(buttons.Entries, input.ButtonEntry[input.JoystickButton]{
				Button:  input.JoystickButton(i),
				Pressed: cur.buttons[i],
			})
		}
	}
	if len(buttons.Entries) > 0 {
		cmds = append(cmds, buttons)
	}
	var axes input.JoystickAxisInput
	for i := range cur.axes {
		if prev.axes[i] != cur.axes[i] {
			axes.Axes = append(axes.Axes, input.JoystickAxis{Index: i, Value: cur.axes[i]})
		}
	}
	if len(axes.Axes) > 0 {
		cmds = append(cmds, axes)
	}
	return cmds
}
