package input

import "fmt"

// Key is a keyboard key.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	keyCount
)

var keyNames = [...]string{
	KeyUnknown: "Unknown", KeyEscape: "Escape", KeySpace: "Space", KeyEnter: "Enter",
	KeyTab: "Tab", KeyBackspace: "Backspace", KeyLeftShift: "LShift", KeyRightShift: "RShift",
	KeyLeftControl: "LControl", KeyRightControl: "RControl", KeyLeftAlt: "LAlt", KeyRightAlt: "RAlt",
	KeyLeftSuper: "LSuper", KeyRightSuper: "RSuper", KeyUp: "Up", KeyDown: "Down",
	KeyLeft: "Left", KeyRight: "Right",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k >= 0 && int(k) < len(keyNames) && keyNames[k] != "":
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Valid reports whether k names a known key.
func (k Key) Valid() bool { return k > KeyUnknown && k < keyCount }

// MouseButton is a physical mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseButton4
	MouseButton5
	MouseButton6
	MouseButton7
	MouseButton8
	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseRight:
		return "Right"
	case MouseMiddle:
		return "Middle"
	}
	if b.Valid() {
		return fmt.Sprintf("Button%d", int(b)+1)
	}
	return fmt.Sprintf("MouseButton(%d)", int(b))
}

func (b MouseButton) Valid() bool { return b >= MouseLeft && b < mouseButtonCount }

// JoystickButton identifies a joystick button. Hat directions follow the
// plain buttons.
type JoystickButton int

const (
	FirstJoystickButton JoystickButton = 0
	MaxJoystickButtons                 = 64
	FirstJoystickHat    JoystickButton = MaxJoystickButtons
	MaxJoystickHats                    = 4
)

// JoystickHat returns the button for a hat direction (0 up, 1 right, 2 down, 3 left).
func JoystickHat(hat, direction int) JoystickButton {
	return FirstJoystickHat + JoystickButton(hat*4+direction)
}

func (b JoystickButton) Valid() bool {
	return b >= FirstJoystickButton && b < FirstJoystickHat+MaxJoystickHats*4
}

func (b JoystickButton) String() string {
	if b >= FirstJoystickHat {
		n := int(b - FirstJoystickHat)
		return fmt.Sprintf("Hat%d.%d", n/4+1, n%4)
	}
	return fmt.Sprintf("Joystick%d", int(b)+1)
}

// MaxJoystickAxes is the size of the axis vector of a JoystickState.
const MaxJoystickAxes = 64

// JoystickAxis is one axis value of a joystick.
type JoystickAxis struct {
	Index int
	Value float32
}

// MidiKey is a MIDI note number (0..127).
type MidiKey int

const (
	MidiKeyMin MidiKey = 0
	MidiKeyMax MidiKey = 127
)

func (k MidiKey) Valid() bool { return k >= MidiKeyMin && k <= MidiKeyMax }

var midiNoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (k MidiKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("MidiKey(%d)", int(k))
	}
	return fmt.Sprintf("%s%d", midiNoteNames[k%12], int(k)/12-1)
}

// TabletPenButton is a barrel button of a tablet pen.
type TabletPenButton int

const (
	PenPrimary TabletPenButton = iota
	PenSecondary
	PenTertiary
	PenButton4
	PenButton5
	PenButton6
	PenButton7
	PenButton8
	MaxTabletPenButtons = 8
)

func (b TabletPenButton) Valid() bool { return b >= 0 && b < MaxTabletPenButtons }

func (b TabletPenButton) String() string { return fmt.Sprintf("Pen%d", int(b)+1) }

// TabletAuxButton is an express key on the tablet body.
type TabletAuxButton int

const MaxTabletAuxButtons = 16

func (b TabletAuxButton) Valid() bool { return b >= 0 && b < MaxTabletAuxButtons }

func (b TabletAuxButton) String() string { return fmt.Sprintf("Aux%d", int(b)+1) }

// TouchSource identifies one concurrent touch point.
type TouchSource int

const MaxTouches = 10

func (s TouchSource) Valid() bool { return s >= 0 && s < MaxTouches }

func (s TouchSource) String() string { return fmt.Sprintf("Touch%d", int(s)+1) }
