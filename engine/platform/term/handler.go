// Package term drives input from a terminal through tcell. Positions are
// in character cells.
package term

import (
	"log/slog"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/input"
)

// Handler reads mouse and key events from a tcell screen on its own
// goroutine. Terminals report no key releases, so every key press is
// followed by its release.
type Handler struct {
	input.DeviceBase

	// Size is the terminal size in cells.
	Size *bindable.Bindable[input.Vec2]

	screen tcell.Screen
	log    *slog.Logger

	mu          sync.Mutex
	sink        input.Sink
	buttons     tcell.ButtonMask
	done        chan struct{}
	onFocusLost func()
}

func New(screen tcell.Screen, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		DeviceBase: input.NewDeviceBase(true),
		Size:       bindable.New(input.Vec2{}),
		screen:     screen,
		log:        log,
	}
}

func (h *Handler) Description() string { return "Terminal" }

func (h *Handler) IsActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done != nil
}

// SetFocusLostCallback registers fn to run, on the reader goroutine, when
// the terminal loses focus.
func (h *Handler) SetFocusLostCallback(fn func()) {
	h.mu.Lock()
	h.onFocusLost = fn
	h.mu.Unlock()
}

// Initialize takes over the screen and starts the reader.
func (h *Handler) Initialize(sink input.Sink) error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	h.screen.EnableMouse()
	h.screen.EnableFocus()
	w, ht := h.screen.Size()
	h.Size.Set(input.Vec2{X: float32(w), Y: float32(ht)})

	done := make(chan struct{})
	h.mu.Lock()
	h.sink = sink
	h.done = done
	h.mu.Unlock()

	go func() {
		defer close(done)
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			h.handle(ev)
		}
	}()
	return nil
}

// Close restores the terminal and waits for the reader to exit.
func (h *Handler) Close() error {
	h.mu.Lock()
	done := h.done
	h.done = nil
	h.mu.Unlock()
	if done == nil {
		return nil
	}
	h.screen.Fini()
	<-done
	return nil
}

func (h *Handler) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, ht := ev.Size()
		h.Size.Set(input.Vec2{X: float32(w), Y: float32(ht)})
	case *tcell.EventFocus:
		h.mu.Lock()
		fn := h.onFocusLost
		h.mu.Unlock()
		if !ev.Focused && fn != nil {
			fn()
		}
	case *tcell.EventKey:
		if !h.Enabled().Value() {
			return
		}
		if k := translateKey(ev); k != input.KeyUnknown {
			h.enqueue(input.KeyboardKeyInput{Key: k, Pressed: true})
			h.enqueue(input.KeyboardKeyInput{Key: k, Pressed: false})
		}
	case *tcell.EventMouse:
		if h.Enabled().Value() {
			h.handleMouse(ev)
		}
	}
}

var mouseButtons = [...]struct {
	mask   tcell.ButtonMask
	button input.MouseButton
}{
	{tcell.Button1, input.MouseLeft},
	{tcell.Button2, input.MouseRight},
	{tcell.Button3, input.MouseMiddle},
}

func (h *Handler) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	h.enqueue(input.MousePositionAbsoluteInput{
		Position: input.Vec2{X: float32(x), Y: float32(y)},
		Source:   input.SourceTerminal,
	})

	mask := ev.Buttons()
	h.mu.Lock()
	prev := h.buttons
	h.buttons = mask
	h.mu.Unlock()

	c := input.MouseButtonInput{Source: input.SourceTerminal}
	for _, b := range mouseButtons {
		if prev&b.mask != mask&b.mask {
			c.Entries = append(c.Entries, input.ButtonEntry[input.MouseButton]{Button: b.button, Pressed: mask&b.mask != 0})
		}
	}
	if len(c.Entries) > 0 {
		h.enqueue(c)
	}

	var scroll input.Vec2
	switch {
	case mask&tcell.WheelUp != 0:
		scroll.Y = 1
	case mask&tcell.WheelDown != 0:
		scroll.Y = -1
	case mask&tcell.WheelLeft != 0:
		scroll.X = -1
	case mask&tcell.WheelRight != 0:
		scroll.X = 1
	}
	if scroll != (input.Vec2{}) {
		h.enqueue(input.MouseScrollRelativeInput{Delta: scroll, Source: input.SourceTerminal})
	}
}

func (h *Handler) enqueue(c input.Command) {
	h.mu.Lock()
	sink := h.sink
	h.mu.Unlock()
	if sink != nil {
		sink.Enqueue(c)
	}
}

var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
}

func translateKey(ev *tcell.EventKey) input.Key {
	k := ev.Key()
	if k == tcell.KeyRune {
		r := unicode.ToUpper(ev.Rune())
		switch {
		case r >= 'A' && r <= 'Z':
			return input.KeyA + input.Key(r-'A')
		case r >= '0' && r <= '9':
			return input.Key0 + input.Key(r-'0')
		case r == ' ':
			return input.KeySpace
		}
		return input.KeyUnknown
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return input.KeyF1 + input.Key(k-tcell.KeyF1)
	}
	return namedKeys[k]
}
