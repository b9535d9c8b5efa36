package platform

import (
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/input"
)

type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// GLFWWindow owns the native window and GL context. Input handlers attach
// their callbacks to it.
type GLFWWindow struct {
	w   *glfw.Window
	log *slog.Logger

	// Size is the client size in pixels.
	Size *bindable.Bindable[input.Vec2]

	onFocusLost func()
}

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg Config, log *slog.Logger) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.2+ core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	log.Info("window created", "gl", gl.GoStr(gl.GetString(gl.VERSION)), "width", cfg.Width, "height", cfg.Height)

	w, h := win.GetSize()
	gw := &GLFWWindow{
		w:    win,
		log:  log,
		Size: bindable.New(input.Vec2{X: float32(w), Y: float32(h)}),
	}
	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.Size.Set(input.Vec2{X: float32(w), Y: float32(h)})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused && gw.onFocusLost != nil {
			gw.onFocusLost()
		}
	})
	return gw, nil
}

// SetFocusLostCallback registers fn to run when the window loses focus.
func (g *GLFWWindow) SetFocusLostCallback(fn func()) { g.onFocusLost = fn }

func (g *GLFWWindow) PollEvents()       { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()      { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool { return g.w.ShouldClose() }
func (g *GLFWWindow) SetTitle(t string) { g.w.SetTitle(t) }

func (g *GLFWWindow) Clear(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// FillRect fills a rectangle given in window coordinates, origin top-left.
func (g *GLFWWindow) FillRect(x, y, w, h float32, c [4]float32) {
	fw, fh := g.w.GetFramebufferSize()
	ww, wh := g.w.GetSize()
	if ww == 0 || wh == 0 {
		return
	}
	sx, sy := float32(fw)/float32(ww), float32(fh)/float32(wh)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x*sx), int32(float32(fh)-(y+h)*sy), int32(w*sx), int32(h*sy))
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

func (g *GLFWWindow) Close() error {
	g.w.Destroy()
	glfw.Terminate()
	return nil
}
