package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/groveinput/engine/input"
)

// MouseHandler feeds cursor, button and scroll callbacks of a window into a
// sink.
type MouseHandler struct {
	input.DeviceBase
	win  *GLFWWindow
	sink input.Sink
}

func NewMouseHandler(win *GLFWWindow) *MouseHandler {
	return &MouseHandler{DeviceBase: input.NewDeviceBase(true), win: win}
}

func (h *MouseHandler) Description() string { return "Mouse" }
func (h *MouseHandler) IsActive() bool      { return h.sink != nil }

func (h *MouseHandler) Initialize(sink input.Sink) error {
	h.sink = sink
	w := h.win.w
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.enqueue(input.MousePositionAbsoluteInput{Position: input.Vec2{X: float32(x), Y: float32(y)}})
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		h.enqueue(input.NewMouseButtonInput(input.MouseButton(b), action != glfw.Release))
	})
	w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		h.enqueue(input.MouseScrollRelativeInput{Delta: input.Vec2{X: float32(xoff), Y: float32(yoff)}, Precise: true})
	})
	return nil
}

func (h *MouseHandler) enqueue(c input.Command) {
	if h.Enabled().Value() {
		h.sink.Enqueue(c)
	}
}

func (h *MouseHandler) Close() error {
	w := h.win.w
	w.SetCursorPosCallback(nil)
	w.SetMouseButtonCallback(nil)
	w.SetScrollCallback(nil)
	h.sink = nil
	return nil
}

type KeyboardHandler struct {
	input.DeviceBase
	win  *GLFWWindow
	sink input.Sink
}

func NewKeyboardHandler(win *GLFWWindow) *KeyboardHandler {
	return &KeyboardHandler{DeviceBase: input.NewDeviceBase(true), win: win}
}

func (h *KeyboardHandler) Description() string { return "Keyboard" }
func (h *KeyboardHandler) IsActive() bool      { return h.sink != nil }

func (h *KeyboardHandler) Initialize(sink input.Sink) error {
	h.sink = sink
	h.win.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat || !h.Enabled().Value() {
			return
		}
		k := translateKey(key)
		if k == input.KeyUnknown {
			return
		}
		h.sink.Enqueue(input.KeyboardKeyInput{Key: k, Pressed: action == glfw.Press})
	})
	return nil
}

func (h *KeyboardHandler) Close() error {
	h.win.w.SetKeyCallback(nil)
	h.sink = nil
	return nil
}

var namedKeys = map[glfw.Key]input.Key{
	glfw.KeyEscape:       input.KeyEscape,
	glfw.KeySpace:        input.KeySpace,
	glfw.KeyEnter:        input.KeyEnter,
	glfw.KeyTab:          input.KeyTab,
	glfw.KeyBackspace:    input.KeyBackspace,
	glfw.KeyLeftShift:    input.KeyLeftShift,
	glfw.KeyRightShift:   input.KeyRightShift,
	glfw.KeyLeftControl:  input.KeyLeftControl,
	glfw.KeyRightControl: input.KeyRightControl,
	glfw.KeyLeftAlt:      input.KeyLeftAlt,
	glfw.KeyRightAlt:     input.KeyRightAlt,
	glfw.KeyLeftSuper:    input.KeyLeftSuper,
	glfw.KeyRightSuper:   input.KeyRightSuper,
	glfw.KeyUp:           input.KeyUp,
	glfw.KeyDown:         input.KeyDown,
	glfw.KeyLeft:         input.KeyLeft,
	glfw.KeyRight:        input.KeyRight,
}

func translateKey(k glfw.Key) input.Key {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return input.KeyA + input.Key(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return input.Key0 + input.Key(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return input.KeyF1 + input.Key(k-glfw.KeyF1)
	}
	return namedKeys[k]
}
