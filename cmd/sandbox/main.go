package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/hubastard/groveinput/engine/colors"
	"github.com/hubastard/groveinput/engine/config"
	"github.com/hubastard/groveinput/engine/core"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/input/midi"
	"github.com/hubastard/groveinput/engine/input/tablet"
	"github.com/hubastard/groveinput/engine/platform"
	"github.com/hubastard/groveinput/engine/platform/term"
)

// pixelsPerUnit scales the demo layout in a GL window.
const pixelsPerUnit = 24

const logFilename = "sandbox.log"

type App struct {
	cfg     config.Config
	canvas  canvas
	scene   *demoScene
	overlay *statsOverlay
	// status shows the overlay; nil keeps it in the log only.
	status func(lines []string)
}

func (a *App) OnStart(e *core.Engine) {
	unit := float32(pixelsPerUnit)
	if a.cfg.Terminal {
		unit = 1
	}
	a.scene = buildScene(e.Input, unit, a.cfg.Input.PassThrough, e.Quit, e.Log)
	a.overlay = newStatsOverlay(time.Second)
	e.Log.Info("sandbox started", "devices", len(e.Input.Devices()), "terminal", a.cfg.Terminal)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	if a.overlay.Frame(e) && a.status != nil {
		a.status(a.overlay.Lines())
	}
	draw(a.canvas, e.Input, colors.Color(a.cfg.Window.ClearColor))
	if tw, ok := a.canvas.(*termWindow); ok {
		for i, l := range a.overlay.Lines() {
			tw.DrawText(1, 20+i, l)
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {}

func main() {
	var (
		configPath = flag.String("config", config.DefaultFilename, "path to the YAML config file")
		useTerm    = flag.Bool("term", false, "run in the terminal instead of a window")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}
	if *useTerm {
		cfg.Terminal = true
	}

	// The terminal backend draws over the tty, so logs go to a file.
	out := os.Stderr
	if cfg.Terminal {
		f, err := os.Create(logFilename)
		if err != nil {
			slog.Error("creating log file", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if cfg.Terminal {
		err = runTerminal(cfg, log)
	} else {
		err = runWindow(cfg, log)
	}
	if err != nil {
		log.Error("sandbox", "err", err)
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func runWindow(cfg config.Config, log *slog.Logger) error {
	win, err := platform.NewGLFWWindow(platform.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, log)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	root := input.NewManager(input.WithLogger(log))

	mouse := platform.NewMouseHandler(win)
	keyboard := platform.NewKeyboardHandler(win)
	joystick := platform.NewJoystickHandler()
	midiIn := midi.New(midi.OpenRawDevice, log)
	tab := tablet.New(win.Size, tablet.WithLogger(log))

	cfg.Input.Mouse.Apply(mouse)
	cfg.Input.Keyboard.Apply(keyboard)
	cfg.Input.Joystick.Apply(joystick)
	cfg.Input.Midi.Apply(midiIn)
	cfg.Input.Tablet.Apply(tab)

	for _, d := range []input.DeviceHandler{mouse, keyboard} {
		if err := root.AddDevice(d); err != nil {
			return fmt.Errorf("%s input: %w", d.Description(), err)
		}
	}
	addOptional(root, log, joystick, midiIn, tab)

	app := &App{
		cfg:    cfg,
		canvas: win,
		status: func(lines []string) {
			win.SetTitle(fmt.Sprintf("%s | %s | %s", cfg.Window.Title, lines[0], lines[2]))
		},
	}
	return core.Run(app, core.Config{ClearColor: cfg.Window.ClearColor, Logger: log}, win, root)
}

func runTerminal(cfg config.Config, log *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	root := input.NewManager(input.WithLogger(log))
	th := term.New(screen, log)
	if err := root.AddDevice(th); err != nil {
		return fmt.Errorf("terminal input: %w", err)
	}
	// The terminal handler owns the screen; MIDI works without a window.
	midiIn := midi.New(midi.OpenRawDevice, log)
	cfg.Input.Midi.Apply(midiIn)
	addOptional(root, log, midiIn)

	win := &termWindow{screen: screen, input: th}
	app := &App{cfg: cfg, canvas: win}
	return core.Run(app, core.Config{ClearColor: cfg.Window.ClearColor, TickRate: 30, Logger: log}, win, root)
}

// addOptional registers devices the sandbox can run without.
func addOptional(root *input.Manager, log *slog.Logger, devices ...input.DeviceHandler) {
	for _, d := range devices {
		if err := root.AddDevice(d); err != nil {
			log.Info("continuing without device", "device", d.Description(), "err", err)
		}
	}
}
